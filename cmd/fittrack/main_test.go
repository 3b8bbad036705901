package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func Test_dataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	if got := dataDir(); got != filepath.Join(dir, "fittrack") {
		t.Fatalf("dataDir: %q", got)
	}
}

func Test_runDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	if got := runDir(); got != filepath.Join(dir, "fittrack") {
		t.Fatalf("runDir: %q", got)
	}
	t.Setenv("XDG_RUNTIME_DIR", "")
	if got := runDir(); !strings.HasSuffix(got, "fittrack") {
		t.Fatalf("runDir fallback: %q", got)
	}
}

func Test_openApp_BoltRoundtrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := openApp(ctx, "", nil)
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.close()

	sess, err := a.accounts.Register(ctx, "user@example.com", "secret1", false)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	l, err := a.ledger(ctx)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if _, err := l.UpsertWeight(ctx, "2026-08-24", 80, ""); err != nil {
		t.Fatalf("UpsertWeight: %v", err)
	}
	if got := len(l.Weights()); got != 1 {
		t.Fatalf("weights: %d", got)
	}
	_ = sess
}
