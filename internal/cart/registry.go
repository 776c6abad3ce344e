package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nikolayk812/mimoo-storefront/internal/port"
	"github.com/nikolayk812/mimoo-storefront/internal/snapshot"
	"go.uber.org/zap"
)

const (
	DefaultMaxSessions = 10_000
	DefaultLoadTimeout = 5 * time.Second
)

// Registry owns one Store per visitor session. Each store is hydrated from
// its own slot the first time the session is seen. At most maxSessions
// stores are held; the least recently used one is dropped and hydrated
// again from its slot when its session comes back.
type Registry struct {
	mu      sync.Mutex
	entries *lru.Cache

	storage      port.SlotStorage
	slotPrefix   string
	eraseOnEmpty bool
	maxSessions  int
	loadTimeout  time.Duration
	logger       *zap.Logger
}

type entry struct {
	once  sync.Once
	store *Store
}

type RegistryOption func(*Registry)

func WithSlotPrefix(prefix string) RegistryOption {
	return func(r *Registry) {
		r.slotPrefix = prefix
	}
}

func WithEraseOnEmpty(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.eraseOnEmpty = enabled
	}
}

// WithMaxSessions caps the number of stores held in memory. Values below 1
// are ignored.
func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

func WithLoadTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.loadTimeout = d
		}
	}
}

func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry builds a registry over storage. A nil storage gives every
// session an ephemeral cart, which is lost once its store is evicted.
func NewRegistry(storage port.SlotStorage, opts ...RegistryOption) *Registry {
	r := &Registry{
		storage:     storage,
		slotPrefix:  snapshot.DefaultKey,
		maxSessions: DefaultMaxSessions,
		loadTimeout: DefaultLoadTimeout,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	// maxSessions is always positive, the only case lru.New rejects
	r.entries, _ = lru.NewWithEvict(r.maxSessions, func(key, _ interface{}) {
		r.logger.Debug("cart evicted", zap.Any("session", key))
	})

	return r
}

// Get returns the store of sessionID, hydrating it on first use. Hydration
// ignores the caller's cancellation and is bounded by the load timeout.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is empty")
	}

	r.mu.Lock()
	var e *entry
	if v, ok := r.entries.Get(sessionID); ok {
		e = v.(*entry)
	} else {
		e = &entry{}
		r.entries.Add(sessionID, e)
	}
	r.mu.Unlock()

	e.once.Do(func() {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.loadTimeout)
		defer cancel()

		logger := r.logger.With(zap.String("session", sessionID))
		adapter := snapshot.New(r.storage,
			snapshot.WithKey(r.SlotKey(sessionID)),
			snapshot.WithEraseOnEmpty(r.eraseOnEmpty),
			snapshot.WithLogger(logger),
		)
		e.store = New(loadCtx, adapter, logger)
	})

	return e.store, nil
}

func (r *Registry) SlotKey(sessionID string) string {
	return r.slotPrefix + ":" + sessionID
}

// Len reports the number of stores currently held.
func (r *Registry) Len() int {
	return r.entries.Len()
}
