package ratelimiter

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// counter is one (identifier, window) count.
type counter struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore implements Store with in-process storage. The whole
// read-modify-write in Incr runs under one mutex, so concurrent requests
// for the same identifier never undercount.
//
// Stale counters are deleted opportunistically: each Incr runs a cleanup
// pass with small probability, bounding memory growth without a scheduled
// job.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter

	retention   time.Duration
	cleanupProb float64
	now         func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithRetention sets how long expired counters linger before cleanup
// deletes them.
func WithRetention(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.retention = d
		}
	}
}

// WithCleanupProbability sets the per-call probability of a cleanup pass.
// Set to 0 to disable opportunistic cleanup (tests), 1 to clean on every call.
func WithCleanupProbability(p float64) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if p >= 0 && p <= 1 {
			ms.cleanupProb = p
		}
	}
}

// WithMemoryStoreClock overrides the time source for tests.
func WithMemoryStoreClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates an in-memory counter store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		counters:    make(map[string]*counter),
		retention:   2 * time.Hour,
		cleanupProb: 0.01,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Incr implements Store.
func (ms *MemoryStore) Incr(ctx context.Context, key string, ttl time.Duration, limit int) (int64, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()

	if ms.cleanupProb > 0 && rand.Float64() < ms.cleanupProb {
		ms.removeStale(now)
	}

	c, exists := ms.counters[key]
	if !exists || now.After(c.expiresAt) {
		c = &counter{expiresAt: now.Add(ttl)}
		ms.counters[key] = c
	}

	if c.count >= int64(limit) {
		return c.count, false, nil
	}

	c.count++
	return c.count, true, nil
}

// Get implements Store.
func (ms *MemoryStore) Get(ctx context.Context, key string) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	c, exists := ms.counters[key]
	if !exists || ms.now().After(c.expiresAt) {
		return 0, nil
	}
	return c.count, nil
}

// Reset implements Store.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.counters, key)
	return nil
}

// Len reports the number of live counters. Exposed for tests and stats.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.counters)
}

// removeStale deletes counters expired past the retention horizon.
// Caller holds the mutex.
func (ms *MemoryStore) removeStale(now time.Time) {
	horizon := now.Add(-ms.retention)
	for key, c := range ms.counters {
		if c.expiresAt.Before(horizon) {
			delete(ms.counters, key)
		}
	}
}
