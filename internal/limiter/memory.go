package limiter

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process limiter with a sliding failure window and lockout.
// Limiter state is intentionally not durable: a process restart clears it,
// which is acceptable for a single local device.
type Memory struct {
	mu       sync.Mutex
	window   time.Duration
	maxFails int
	blockFor time.Duration
	now      func() time.Time

	entries map[string]*entry
}

type entry struct {
	fails        int
	firstFail    time.Time
	blockedUntil time.Time
}

// NewMemory constructs an in-memory limiter.
func NewMemory(window time.Duration, maxFails int, blockFor time.Duration) *Memory {
	return &Memory{
		window:   window,
		maxFails: maxFails,
		blockFor: blockFor,
		now:      time.Now,
		entries:  make(map[string]*entry),
	}
}

// Allow reports whether login is currently allowed and a retry-after duration.
func (m *Memory) Allow(_ context.Context, email string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[email]
	if !ok {
		return true, 0, nil
	}
	now := m.now()
	if e.blockedUntil.After(now) {
		return false, e.blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success resets counters after a successful login.
func (m *Memory) Success(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, email)
	return nil
}

// Failure records a failed attempt. When the failure count inside the window
// reaches the threshold, the email is blocked for blockFor.
func (m *Memory) Failure(_ context.Context, email string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[email]
	if !ok || now.Sub(e.firstFail) > m.window {
		e = &entry{firstFail: now}
		m.entries[email] = e
	}
	e.fails++
	if e.fails >= m.maxFails {
		e.blockedUntil = now.Add(m.blockFor)
		return true, m.blockFor, nil
	}
	return false, 0, nil
}
