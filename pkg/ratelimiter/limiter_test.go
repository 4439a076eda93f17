package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/ratelimiter"
)

func newLimiter(t *testing.T, limit int, window time.Duration, now *time.Time) *ratelimiter.FixedWindow {
	t.Helper()

	fw, err := ratelimiter.New(
		ratelimiter.NewMemoryStore(),
		ratelimiter.Config{Limit: limit, Window: window},
		ratelimiter.WithClock(func() time.Time { return *now }),
	)
	require.NoError(t, err)
	return fw
}

func TestNew(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()

	t.Run("rejects missing store", func(t *testing.T) {
		t.Parallel()

		_, err := ratelimiter.New(nil, ratelimiter.Config{Limit: 1, Window: time.Minute})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		t.Parallel()

		_, err := ratelimiter.New(store, ratelimiter.Config{Limit: 0, Window: time.Minute})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})

	t.Run("rejects sub-second window", func(t *testing.T) {
		t.Parallel()

		// Window indexes are whole seconds; anything shorter cannot form
		// a window.
		_, err := ratelimiter.New(store, ratelimiter.Config{Limit: 1, Window: 500 * time.Millisecond})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})
}

func TestFixedWindow_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("allows up to the limit", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		fw := newLimiter(t, 5, time.Hour, &now)

		for i := range 5 {
			result, err := fw.Allow(ctx, "client")
			require.NoError(t, err)
			assert.True(t, result.Allowed(), "request %d should be allowed", i+1)
			assert.Equal(t, 5, result.Limit)
			assert.Equal(t, 4-i, result.Remaining)
		}
	})

	t.Run("rejects past the limit", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		fw := newLimiter(t, 5, time.Hour, &now)

		for range 5 {
			_, err := fw.Allow(ctx, "client")
			require.NoError(t, err)
		}

		result, err := fw.Allow(ctx, "client")
		require.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.Equal(t, 0, result.Remaining)
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("rejection does not consume budget", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		fw := newLimiter(t, 2, time.Hour, &now)

		_, err := fw.Allow(ctx, "client")
		require.NoError(t, err)
		_, err = fw.Allow(ctx, "client")
		require.NoError(t, err)

		// Hammering a closed window must not push the counter past the limit.
		for range 10 {
			result, err := fw.Allow(ctx, "client")
			require.NoError(t, err)
			assert.False(t, result.Allowed())
		}

		status, err := fw.Status(ctx, "client")
		require.NoError(t, err)
		assert.Equal(t, 0, status.Remaining)
	})

	t.Run("new window grants a fresh budget", func(t *testing.T) {
		t.Parallel()

		now := time.Now().Truncate(time.Hour)
		fw := newLimiter(t, 2, time.Hour, &now)

		for range 3 {
			_, err := fw.Allow(ctx, "client")
			require.NoError(t, err)
		}

		now = now.Add(time.Hour + time.Second)

		result, err := fw.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
		assert.Equal(t, 1, result.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		fw := newLimiter(t, 1, time.Hour, &now)

		result, err := fw.Allow(ctx, "alice")
		require.NoError(t, err)
		require.True(t, result.Allowed())

		result, err = fw.Allow(ctx, "alice")
		require.NoError(t, err)
		require.False(t, result.Allowed())

		result, err = fw.Allow(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})

	t.Run("reset clears the current window", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		fw := newLimiter(t, 1, time.Hour, &now)

		_, err := fw.Allow(ctx, "client")
		require.NoError(t, err)

		require.NoError(t, fw.Reset(ctx, "client"))

		result, err := fw.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})
}

func TestFixedWindow_Status(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	fw := newLimiter(t, 3, time.Hour, &now)

	status, err := fw.Status(ctx, "client")
	require.NoError(t, err)
	assert.True(t, status.Allowed())
	assert.Equal(t, 3, status.Remaining)

	_, err = fw.Allow(ctx, "client")
	require.NoError(t, err)

	status, err = fw.Status(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, 2, status.Remaining)

	// Status itself never consumes.
	status, err = fw.Status(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, 2, status.Remaining)
}

func TestFixedWindow_ConcurrentAllow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	fw := newLimiter(t, 50, time.Hour, &now)

	const attempts = 100
	var wg sync.WaitGroup
	allowed := make(chan struct{}, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := fw.Allow(ctx, "client")
			if err == nil && result.Allowed() {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	assert.Len(t, allowed, 50, "concurrent requests must not slip past the limit")
}

func TestMemoryStore_Cleanup(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithRetention(time.Minute),
		ratelimiter.WithCleanupProbability(1), // sweep on every increment
		ratelimiter.WithMemoryStoreClock(func() time.Time { return now }),
	)

	ctx := context.Background()
	_, _, err := store.Incr(ctx, "old-window", time.Minute, 10)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	now = now.Add(3 * time.Minute)

	_, _, err = store.Incr(ctx, "fresh-window", time.Minute, 10)
	require.NoError(t, err)

	// The stale counter was dropped during the sweep.
	assert.Equal(t, 1, store.Len())
}
