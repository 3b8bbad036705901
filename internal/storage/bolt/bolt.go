// Package bolt implements the storage boundary on a local bbolt file,
// the default durable store for a single device.
package bolt

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/storage"
)

const bucketBlobs = "blobs" // key: store key -> raw blob

// Store is a bbolt-backed storage.Store.
type Store struct {
	db *bbolt.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketBlobs))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the blob stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(bucketBlobs)).Get([]byte(key))
		if v == nil {
			return errs.ErrNotFound
		}
		// bbolt buffers are only valid inside the transaction.
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Set stores blob under key.
func (s *Store) Set(_ context.Context, key string, blob []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketBlobs)).Put([]byte(key), blob)
	})
}

// Remove deletes key; absent keys are a no-op.
func (s *Store) Remove(_ context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketBlobs)).Delete([]byte(key))
	})
}
