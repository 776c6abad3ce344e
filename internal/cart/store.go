// Package cart holds the cart store, the single authority over cart
// contents and drawer visibility.
package cart

import (
	"context"
	"slices"
	"sync"

	"github.com/nikolayk812/mimoo-storefront/internal/domain"
	"github.com/nikolayk812/mimoo-storefront/internal/port"
	"go.uber.org/zap"
)

// Store is hydrated once from its snapshot on construction. Every mutation
// except Clear is followed by a best-effort Save; Clear erases the snapshot
// instead.
type Store struct {
	mu       sync.Mutex
	items    []domain.CartItem
	isOpen   bool
	snapshot port.CartSnapshot
	logger   *zap.Logger
}

// New hydrates a store from snapshot. A nil logger is replaced by a no-op.
func New(ctx context.Context, snapshot port.CartSnapshot, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		snapshot: snapshot,
		logger:   logger,
	}
	s.items = sanitize(snapshot.Load(ctx))

	logger.Debug("cart hydrated", zap.Int("items", len(s.items)))
	return s
}

func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = true
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = false
}

func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = !s.isOpen
}

// AddItem increments the quantity of an existing line, ignoring the other
// candidate fields, or appends a new line with quantity 1. The drawer is
// opened afterwards.
func (s *Store) AddItem(ctx context.Context, candidate domain.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(candidate.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, domain.CartItem{
			ID:        candidate.ID,
			Name:      candidate.Name,
			UnitPrice: candidate.UnitPrice,
			Image:     candidate.Image,
			Quantity:  1,
		})
	}

	s.isOpen = true
	s.persist(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}

	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)
}

// SetQuantity replaces the quantity of an existing line with max(1, quantity).
func (s *Store) SetQuantity(ctx context.Context, id, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}

	s.items[i].Quantity = max(1, quantity)
	s.persist(ctx)
}

// Clear empties the cart and erases the snapshot so it cannot be reloaded.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.snapshot.Erase(ctx)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

func (s *Store) Item(id int) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.CartItem{}, false
	}
	return s.items[i], true
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isOpen
}

func (s *Store) ItemCount() int {
	return domain.ItemCount(s.Items())
}

func (s *Store) Subtotal() (domain.Money, error) {
	return domain.Subtotal(s.Items())
}

func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.CartState{
		Items:  slices.Clone(s.items),
		IsOpen: s.isOpen,
	}
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.ID == id
	})
}

func (s *Store) persist(ctx context.Context) {
	s.snapshot.Save(ctx, slices.Clone(s.items))
}

// sanitize keeps the first line per id and lifts quantities below 1.
func sanitize(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	seen := make(map[int]struct{}, len(items))

	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		item.Quantity = max(1, item.Quantity)
		out = append(out, item)
	}

	return out
}
