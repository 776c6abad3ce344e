package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemorySlots keeps snapshots for the lifetime of the process only.
type MemorySlots struct {
	mu    sync.RWMutex
	store map[string]string
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{store: make(map[string]string)}
}

func (m *MemorySlots) GetItem(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.store[key]
	return val, ok, nil
}

func (m *MemorySlots) SetItem(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = value
	return nil
}

func (m *MemorySlots) RemoveItem(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}
