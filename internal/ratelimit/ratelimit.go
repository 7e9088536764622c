package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of a single rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store counts requests per key within a fixed window.
type Store interface {
	// Incr records one request for key and returns the window count
	// together with the window's reset time.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// Limiter caps request rate per client key within a fixed window.
type Limiter struct {
	max    int
	window time.Duration
	store  Store
}

// New creates a limiter allowing max requests per window against the
// given store.
func New(max int, window time.Duration, store Store) *Limiter {
	if max <= 0 {
		max = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{max: max, window: window, store: store}
}

// Allow records one request for key and reports whether it is within
// the limit. Store errors fail open: throttling is best effort and
// must never take the site down.
func (l *Limiter) Allow(ctx context.Context, key string) Result {
	count, resetAt, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Result{Allowed: true, Remaining: 0, ResetAt: resetAt}
	}

	remaining := l.max - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= int64(l.max),
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a process-local fixed-window counter. It is not
// persisted and not shared across instances; under horizontal scaling
// every instance keeps an independent count. Use the Redis store when
// that matters.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time

	sweepEvery int
	opsSince   int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
		sweepEvery: 1024,
	}
}

// Incr implements Store. The first request from a key opens a window;
// a request after the window's reset time opens a fresh one.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = memoryEntry{count: 1, resetAt: now.Add(window)}
	} else {
		entry.count++
	}
	s.entries[key] = entry

	s.opsSince++
	if s.opsSince >= s.sweepEvery {
		s.opsSince = 0
		s.sweepLocked(now)
	}

	return entry.count, entry.resetAt, nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, entry := range s.entries {
		if !now.Before(entry.resetAt) {
			delete(s.entries, key)
		}
	}
}
