package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/mimoo-storefront/internal/db"
)

// PostgresSlots stores snapshots in the cart_snapshots table. Every write and
// every erase bumps the slot revision in a single statement; concurrent
// writers resolve last-write-wins. Erased slots keep their row so the
// revision never goes back.
type PostgresSlots struct {
	q *db.Queries
}

func NewPostgresSlots(pool *pgxpool.Pool) *PostgresSlots {
	return &PostgresSlots{
		q: db.New(pool),
	}
}

func NewPostgresSlotsWithTx(tx pgx.Tx) *PostgresSlots {
	return &PostgresSlots{
		q: db.New(tx),
	}
}

func (r *PostgresSlots) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	row, err := r.q.GetSnapshot(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetSnapshot: %w", err)
	}
	if row.Erased {
		return "", false, nil
	}

	return row.Payload, true, nil
}

func (r *PostgresSlots) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	_, err := r.q.PutSnapshot(ctx, db.PutSnapshotParams{
		Slot:    key,
		Payload: value,
	})
	if err != nil {
		return fmt.Errorf("q.PutSnapshot: %w", err)
	}

	return nil
}

func (r *PostgresSlots) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := r.q.EraseSnapshot(ctx, key); err != nil {
		return fmt.Errorf("q.EraseSnapshot: %w", err)
	}

	return nil
}

// Revision returns the number of writes and erases applied to the slot,
// 0 if it was never written.
func (r *PostgresSlots) Revision(ctx context.Context, key string) (int64, error) {
	row, err := r.q.GetSnapshot(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("q.GetSnapshot: %w", err)
	}

	return row.Revision, nil
}
