package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS kv_store_updated_at_idx ON kv_store (updated_at)`,
}

// Migrate creates the key-value table if it does not exist.
func Migrate(ctx context.Context, tr *Transactor) error {
	return tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}

// Store is a key-value store backed by the kv_store table.
type Store struct {
	db DBTX
	tr *Transactor
}

// NewStore creates a Store on top of a pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, tr: NewTransactor(pool)}
}

// Get returns the value stored under key.
// Returns storage.ErrNotFound if the key does not exist.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("get %q: %w", key, err)
	}

	return value, nil
}

const upsertQuery = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value, updated_at = NOW()
`

// Set inserts or replaces the value stored under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.Exec(ctx, upsertQuery, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	return nil
}

// Update applies fn to the value of key inside a transaction. The row is
// locked, so concurrent updates of the same key from other replicas are
// serialized. The row is created first so that there is always something
// to lock.
func (s *Store) Update(ctx context.Context, key string, fn storage.UpdateFunc) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`INSERT INTO kv_store (key, value) VALUES ($1, '') ON CONFLICT (key) DO NOTHING`,
			key,
		)
		if err != nil {
			return fmt.Errorf("update %q: %w", key, err)
		}
		found := tag.RowsAffected() == 0

		var current string
		if err := tx.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`, key).Scan(&current); err != nil {
			return fmt.Errorf("update %q: %w", key, err)
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, upsertQuery, key, next); err != nil {
			return fmt.Errorf("update %q: %w", key, err)
		}

		return nil
	})
}
