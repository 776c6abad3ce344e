// Package catalog serves the static product list of the shop page.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nikolayk812/mimoo-storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID       int
	Name     string
	Price    domain.Money
	Image    string
	Category string
	InStock  bool
}

func (p Product) Candidate() domain.Candidate {
	return domain.Candidate{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     p.Image,
	}
}

type Category struct {
	ID   string
	Name string
}

var Categories = []Category{
	{ID: "t-shirts", Name: "T-shirts"},
	{ID: "tote-bags", Name: "Tote Bags"},
	{ID: "gift-sets", Name: "Gift Sets"},
	{ID: "collaborations", Name: "Collaborations"},
}

type Catalog struct {
	products []Product
}

func New(products []Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// Default returns the shop's product list.
func Default() *Catalog {
	return New([]Product{
		{ID: 1, Name: "MI.MOO Tote Bag", Price: domain.MustParseMoney("€25.00"), Image: "/images/tote-bag.png", Category: "tote-bags", InStock: true},
		{ID: 2, Name: "ACAPO Collaboration Tee", Price: domain.MustParseMoney("€35.00"), Image: "/images/tshirt-collab.png", Category: "collaborations", InStock: true},
		{ID: 3, Name: "Classic MI.MOO Tee", Price: domain.MustParseMoney("€30.00"), Image: "/images/models-collage.png", Category: "t-shirts", InStock: true},
		{ID: 4, Name: "Gift Box Experience", Price: domain.MustParseMoney("€45.00"), Image: "/images/packaging.png", Category: "gift-sets", InStock: false},
		{ID: 5, Name: "Limited Edition Tote", Price: domain.MustParseMoney("€28.00"), Image: "/images/tote-bag.png", Category: "tote-bags", InStock: false},
		{ID: 6, Name: "Green Statement Tee", Price: domain.MustParseMoney("€32.00"), Image: "/images/tshirt-collab.png", Category: "t-shirts", InStock: true},
		{ID: 7, Name: "Braille Pattern Tee", Price: domain.MustParseMoney("€30.00"), Image: "/images/models-collage.png", Category: "t-shirts", InStock: true},
		{ID: 8, Name: "Premium Gift Set", Price: domain.MustParseMoney("€50.00"), Image: "/images/packaging.png", Category: "gift-sets", InStock: false},
	})
}

func (c *Catalog) All() []Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Find(id int) (Product, error) {
	i := slices.IndexFunc(c.products, func(p Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return Product{}, fmt.Errorf("id[%d]: %w", id, ErrProductNotFound)
	}

	return c.products[i], nil
}

// Filter narrows the shop listing. Zero values disable a criterion.
type Filter struct {
	Categories  []string
	InStockOnly bool
	MinPrice    *domain.Money
	MaxPrice    *domain.Money
}

func (c *Catalog) Filter(f Filter) []Product {
	var out []Product

	for _, p := range c.products {
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, p.Category) {
			continue
		}
		if f.InStockOnly && !p.InStock {
			continue
		}
		if f.MinPrice != nil && p.Price.Amount.LessThan(f.MinPrice.Amount) {
			continue
		}
		if f.MaxPrice != nil && p.Price.Amount.GreaterThan(f.MaxPrice.Amount) {
			continue
		}

		out = append(out, p)
	}

	return out
}
