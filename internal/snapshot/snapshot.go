// Package snapshot mirrors cart items into a durable key/value slot.
//
// The adapter is best effort: read failures hydrate an empty cart, write
// failures are logged and dropped. Saving an empty item list is skipped
// unless WithEraseOnEmpty is set, so a slot is only guaranteed to be
// cleared by an explicit Erase.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/mimoo-storefront/internal/domain"
	"github.com/nikolayk812/mimoo-storefront/internal/port"
	"go.uber.org/zap"
)

const DefaultKey = "mimoo-cart"

type Adapter struct {
	storage      port.SlotStorage
	key          string
	logger       *zap.Logger
	eraseOnEmpty bool
}

type Option func(*Adapter)

func WithKey(key string) Option {
	return func(a *Adapter) {
		a.key = key
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithEraseOnEmpty makes Save of an empty list erase the slot instead of
// leaving the previous snapshot in place.
func WithEraseOnEmpty(enabled bool) Option {
	return func(a *Adapter) {
		a.eraseOnEmpty = enabled
	}
}

// New builds an adapter over storage. A nil storage yields an ephemeral
// adapter that never persists anything.
func New(storage port.SlotStorage, opts ...Option) *Adapter {
	a := &Adapter{
		storage: storage,
		key:     DefaultKey,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.With(zap.String("slot", a.key))
	return a
}

var _ port.CartSnapshot = (*Adapter)(nil)

func (a *Adapter) Key() string {
	return a.key
}

func (a *Adapter) Load(ctx context.Context) []domain.CartItem {
	if a.storage == nil {
		return nil
	}

	raw, ok, err := a.storage.GetItem(ctx, a.key)
	if err != nil {
		a.logger.Warn("snapshot unavailable, starting with empty cart", zap.Error(err))
		return nil
	}
	if !ok {
		a.logger.Debug("no snapshot")
		return nil
	}

	items, err := Decode(raw)
	if err != nil {
		a.logger.Warn("snapshot malformed, starting with empty cart", zap.Error(err))
		return nil
	}

	a.logger.Debug("snapshot loaded", zap.Int("items", len(items)))
	return items
}

func (a *Adapter) Save(ctx context.Context, items []domain.CartItem) {
	if a.storage == nil {
		return
	}

	if len(items) == 0 {
		if a.eraseOnEmpty {
			a.Erase(ctx)
		}
		return
	}

	raw, err := Encode(items)
	if err != nil {
		a.logger.Warn("snapshot not encoded", zap.Error(err))
		return
	}

	if err := a.storage.SetItem(ctx, a.key, raw); err != nil {
		a.logger.Warn("snapshot not saved", zap.Error(err))
	}
}

func (a *Adapter) Erase(ctx context.Context) {
	if a.storage == nil {
		return
	}

	if err := a.storage.RemoveItem(ctx, a.key); err != nil {
		a.logger.Warn("snapshot not erased", zap.Error(err))
	}
}

// wireItem is the persisted shape of a line item.
type wireItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

func Encode(items []domain.CartItem) (string, error) {
	wire := make([]wireItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, wireItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.UnitPrice.String(),
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	b, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(b), nil
}

// Decode parses and validates a snapshot. Any invalid entry rejects the
// whole snapshot.
func Decode(raw string) ([]domain.CartItem, error) {
	var wire []wireItem
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	seen := make(map[int]struct{}, len(wire))
	items := make([]domain.CartItem, 0, len(wire))

	for i, w := range wire {
		if _, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("item[%d]: duplicate id %d", i, w.ID)
		}
		seen[w.ID] = struct{}{}

		if w.Name == "" {
			return nil, fmt.Errorf("item[%d]: name is empty", i)
		}
		if w.Quantity < 1 {
			return nil, fmt.Errorf("item[%d]: quantity %d is not positive", i, w.Quantity)
		}

		price, err := domain.ParseMoney(w.Price)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: domain.ParseMoney: %w", i, err)
		}

		items = append(items, domain.CartItem{
			ID:        w.ID,
			Name:      w.Name,
			UnitPrice: price,
			Image:     w.Image,
			Quantity:  w.Quantity,
		})
	}

	return items, nil
}
