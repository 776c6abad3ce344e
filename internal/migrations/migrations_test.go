package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/db?sslmode=disable", "pgx5://u:p@localhost:5432/db?sslmode=disable"},
		{"postgresql://localhost/db", "pgx5://localhost/db"},
		{"pgx5://localhost/db", "pgx5://localhost/db"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pgx5URL(tt.in))
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir(".")
	assert.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "01_cart_snapshots.up.sql")
	assert.Contains(t, names, "01_cart_snapshots.down.sql")
	assert.Contains(t, names, "02_cart_snapshots_erased.up.sql")
	assert.Contains(t, names, "02_cart_snapshots_erased.down.sql")
}
