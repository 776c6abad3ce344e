// Package view derives the cart drawer and trigger from store state and
// turns their controls into store commands.
package view

import (
	"context"
	"embed"
	"html/template"

	"github.com/nikolayk812/mimoo-storefront/internal/domain"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html.tmpl"))

const placeholderImage = "/placeholder.svg"

// CartStore is the part of the cart store the views read and command.
type CartStore interface {
	State() domain.CartState
	Item(id int) (domain.CartItem, bool)
	SetQuantity(ctx context.Context, id, quantity int)
	RemoveItem(ctx context.Context, id int)
	Close()
	Toggle()
}
