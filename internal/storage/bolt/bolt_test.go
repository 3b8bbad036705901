package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/and161185/fittrack/internal/errs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fittrack.bolt"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetSetRemove(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Get(missing): %v", err)
	}
	if err := s.Set(ctx, "ft_u_weights", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "ft_u_weights")
	if err != nil || string(got) != `[]` {
		t.Fatalf("Get: %q err=%v", got, err)
	}
	if err := s.Remove(ctx, "ft_u_weights"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get(ctx, "ft_u_weights"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Get after Remove: %v", err)
	}
	if err := s.Remove(ctx, "ft_u_weights"); err != nil {
		t.Fatalf("Remove twice: %v", err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fittrack.bolt")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Simulated restart.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.Get(ctx, "k")
	if err != nil || string(got) != "persisted" {
		t.Fatalf("Get after reopen: %q err=%v", got, err)
	}
}
