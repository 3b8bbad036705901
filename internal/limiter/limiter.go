// Package limiter defines interfaces and implementations for login rate limiting.
package limiter

import (
	"context"
	"time"
)

// Limiter controls login attempts and temporary lockouts per account email.
type Limiter interface {
	// Allow reports whether login is currently allowed and an optional retry-after.
	Allow(ctx context.Context, email string) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, email string) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, email string) (bool, time.Duration, error)
}
