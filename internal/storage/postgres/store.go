package postgres

import (
	"context"
	"errors"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/storage"
)

// Store implements storage.Store on the vault_blobs table.
type Store struct{ db *DB }

var _ storage.Store = (*Store)(nil)

// NewStore constructs a Postgres-backed store.
func NewStore(db *DB) *Store { return &Store{db: db} }

// Get selects the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT blob FROM vault_blobs WHERE key=$1`
	var blob []byte
	if err := s.db.Pool.QueryRow(ctx, q, key).Scan(&blob); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return blob, nil
}

// Set upserts the blob under key.
func (s *Store) Set(ctx context.Context, key string, blob []byte) error {
	const q = `
INSERT INTO vault_blobs (key, blob, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET blob = EXCLUDED.blob, updated_at = now()`
	_, err := s.db.Pool.Exec(ctx, q, key, blob)
	return err
}

// Remove deletes key; absent keys are a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	const q = `
DELETE FROM vault_blobs WHERE key=$1`
	_, err := s.db.Pool.Exec(ctx, q, key)
	return err
}
