package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_BACKEND", "CART_SLOT_KEY", "CART_ERASE_ON_EMPTY", "CART_MAX_SESSIONS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "mimoo-cart", cfg.SlotKey)
	assert.False(t, cfg.EraseOnEmpty)
	assert.Equal(t, 10_000, cfg.MaxSessions)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("CART_ERASE_ON_EMPTY", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	t.Setenv("CART_MAX_SESSIONS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.True(t, cfg.EraseOnEmpty)
	assert.Equal(t, 250, cfg.MaxSessions)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadUnsupportedBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "etcd")

	_, err := Load()
	require.EqualError(t, err, "STORAGE_BACKEND[etcd] is not supported")
}
