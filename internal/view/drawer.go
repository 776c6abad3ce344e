package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
)

// ErrCheckoutUnavailable is returned by Checkout; no commerce backend is
// wired behind the drawer.
var ErrCheckoutUnavailable = errors.New("checkout is not available")

const shippingLabel = "Calculated at checkout"

type Drawer struct {
	store  CartStore
	logger *zap.Logger
}

type DrawerModel struct {
	Open     bool        `json:"isOpen"`
	Empty    bool        `json:"empty"`
	Lines    []LineModel `json:"items"`
	Count    int         `json:"itemCount"`
	Subtotal string      `json:"subtotal"`
	Shipping string      `json:"shipping"`
	Total    string      `json:"total"`
}

type LineModel struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	UnitPrice    string `json:"price"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"lineTotal"`
	CanDecrement bool   `json:"canDecrement"`
}

func NewDrawer(store CartStore, logger *zap.Logger) *Drawer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Drawer{store: store, logger: logger}
}

func (d *Drawer) Model() DrawerModel {
	state := d.store.State()

	m := DrawerModel{
		Open:     state.IsOpen,
		Empty:    len(state.Items) == 0,
		Lines:    make([]LineModel, 0, len(state.Items)),
		Count:    state.ItemCount(),
		Shipping: shippingLabel,
	}

	for _, item := range state.Items {
		image := item.Image
		if image == "" {
			image = placeholderImage
		}

		m.Lines = append(m.Lines, LineModel{
			ID:           item.ID,
			Name:         item.Name,
			Image:        image,
			UnitPrice:    item.UnitPrice.String(),
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal().String(),
			CanDecrement: item.Quantity > 1,
		})
	}

	subtotal, err := state.Subtotal()
	if err != nil {
		d.logger.Warn("subtotal not computed", zap.Error(err))
		return m
	}
	m.Subtotal = subtotal.String()
	m.Total = subtotal.String()

	return m
}

// Increment raises the quantity by one, saturating at math.MaxInt.
func (d *Drawer) Increment(ctx context.Context, id int) {
	item, ok := d.store.Item(id)
	if !ok || item.Quantity == math.MaxInt {
		return
	}
	d.store.SetQuantity(ctx, id, item.Quantity+1)
}

// Decrement lowers the quantity by one; the control is disabled at 1.
func (d *Drawer) Decrement(ctx context.Context, id int) {
	item, ok := d.store.Item(id)
	if !ok || item.Quantity <= 1 {
		return
	}
	d.store.SetQuantity(ctx, id, item.Quantity-1)
}

func (d *Drawer) Remove(ctx context.Context, id int) {
	d.store.RemoveItem(ctx, id)
}

func (d *Drawer) Close() {
	d.store.Close()
}

// ContinueShopping closes the drawer, both from the footer and the empty state.
func (d *Drawer) ContinueShopping() {
	d.store.Close()
}

func (d *Drawer) Checkout(context.Context) error {
	return ErrCheckoutUnavailable
}

func (d *Drawer) Render(w io.Writer) error {
	if err := templates.ExecuteTemplate(w, "drawer.html.tmpl", d.Model()); err != nil {
		return fmt.Errorf("templates.ExecuteTemplate: %w", err)
	}
	return nil
}
