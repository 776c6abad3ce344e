package port

import (
	"context"

	"github.com/nikolayk812/mimoo-storefront/internal/domain"
)

// SlotStorage is a durable key/value surface holding serialized snapshots.
// GetItem reports ok=false when the key is absent.
type SlotStorage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// CartSnapshot mirrors cart items into durable storage. Implementations
// absorb storage failures; none of the methods report errors.
type CartSnapshot interface {
	Load(ctx context.Context) []domain.CartItem
	Save(ctx context.Context, items []domain.CartItem)
	Erase(ctx context.Context)
}
