// Package memory provides an in-process Store. It backs the ephemeral
// session slot (the analogue of a tab-scoped store: gone when the process
// exits) and serves as the test double for durable backends.
package memory

import (
	"context"
	"sync"

	"github.com/and161185/fittrack/internal/errs"
	"github.com/and161185/fittrack/internal/storage"
)

// Store is a concurrency-safe map-backed storage.Store.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ storage.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

// Set stores a copy of blob under key.
func (s *Store) Set(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.blobs[key] = cp
	return nil
}

// Remove deletes key; absent keys are a no-op.
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
