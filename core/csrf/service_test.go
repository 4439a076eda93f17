package csrf_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/csrf"
)

func TestService_GenerateValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid token passes once", func(t *testing.T) {
		t.Parallel()

		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})
		sessionID := uuid.New()

		token, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.NoError(t, svc.Validate(ctx, sessionID, token))
	})

	t.Run("token is single use", func(t *testing.T) {
		t.Parallel()

		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})
		sessionID := uuid.New()

		token, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)

		require.NoError(t, svc.Validate(ctx, sessionID, token))
		assert.ErrorIs(t, svc.Validate(ctx, sessionID, token), csrf.ErrTokenInvalid)
	})

	t.Run("empty candidate rejected", func(t *testing.T) {
		t.Parallel()

		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})
		assert.ErrorIs(t, svc.Validate(ctx, uuid.New(), ""), csrf.ErrTokenMissing)
	})

	t.Run("unknown candidate rejected", func(t *testing.T) {
		t.Parallel()

		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})
		assert.ErrorIs(t, svc.Validate(ctx, uuid.New(), "not-a-real-token"), csrf.ErrTokenInvalid)
	})

	t.Run("token bound to session", func(t *testing.T) {
		t.Parallel()

		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})

		token, err := svc.Generate(ctx, uuid.New())
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Validate(ctx, uuid.New(), token), csrf.ErrTokenInvalid)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		t.Parallel()

		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})
		sessionID := uuid.New()

		seen := make(map[string]bool)
		for range 5 {
			token, err := svc.Generate(ctx, sessionID)
			require.NoError(t, err)
			require.False(t, seen[token])
			seen[token] = true
		}
	})
}

func TestService_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("expired token rejected", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{TTL: 30 * time.Minute},
			csrf.WithClock(func() time.Time { return now }))
		sessionID := uuid.New()

		token, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)

		now = now.Add(31 * time.Minute)
		assert.Error(t, svc.Validate(ctx, sessionID, token))
	})

	t.Run("token within ttl accepted", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{TTL: 30 * time.Minute},
			csrf.WithClock(func() time.Time { return now }))
		sessionID := uuid.New()

		token, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)

		now = now.Add(29 * time.Minute)
		assert.NoError(t, svc.Validate(ctx, sessionID, token))
	})

	t.Run("token at exactly its ttl accepted", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{TTL: 30 * time.Minute},
			csrf.WithClock(func() time.Time { return now }))
		sessionID := uuid.New()

		token, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)

		// Valid through the full TTL; the boundary second still counts.
		now = now.Add(30 * time.Minute)
		assert.NoError(t, svc.Validate(ctx, sessionID, token))
	})

	t.Run("generate sweeps expired entries", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		store := csrf.NewMemoryStore()
		svc := csrf.NewService(store, csrf.Config{TTL: 30 * time.Minute},
			csrf.WithClock(func() time.Time { return now }))
		sessionID := uuid.New()

		_, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)
		_, err = svc.Generate(ctx, sessionID)
		require.NoError(t, err)
		require.Equal(t, 2, store.Len(sessionID))

		now = now.Add(time.Hour)
		_, err = svc.Generate(ctx, sessionID)
		require.NoError(t, err)

		// The two stale tokens were purged; only the fresh one remains.
		assert.Equal(t, 1, store.Len(sessionID))
	})
}

func TestService_SetBound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("oldest token evicted beyond bound", func(t *testing.T) {
		t.Parallel()

		store := csrf.NewMemoryStore()
		svc := csrf.NewService(store, csrf.Config{MaxTokens: 3})
		sessionID := uuid.New()

		first, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)

		for range 3 {
			_, err := svc.Generate(ctx, sessionID)
			require.NoError(t, err)
		}

		assert.Equal(t, 3, store.Len(sessionID))
		assert.ErrorIs(t, svc.Validate(ctx, sessionID, first), csrf.ErrTokenInvalid)
	})

	t.Run("newest tokens survive eviction", func(t *testing.T) {
		t.Parallel()

		svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{MaxTokens: 2})
		sessionID := uuid.New()

		_, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)
		second, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)
		third, err := svc.Generate(ctx, sessionID)
		require.NoError(t, err)

		assert.NoError(t, svc.Validate(ctx, sessionID, second))
		assert.NoError(t, svc.Validate(ctx, sessionID, third))
	})
}

func TestService_ConcurrentConsume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})
	sessionID := uuid.New()

	token, err := svc.Generate(ctx, sessionID)
	require.NoError(t, err)

	const attempts = 32
	var wg sync.WaitGroup
	successes := make(chan struct{}, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Validate(ctx, sessionID, token) == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Len(t, successes, 1, "exactly one concurrent consumer may win")
}

func TestService_DestroySession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := csrf.NewMemoryStore()
	svc := csrf.NewService(store, csrf.Config{})
	sessionID := uuid.New()

	token, err := svc.Generate(ctx, sessionID)
	require.NoError(t, err)

	require.NoError(t, svc.DestroySession(ctx, sessionID))
	assert.Equal(t, 0, store.Len(sessionID))
	assert.ErrorIs(t, svc.Validate(ctx, sessionID, token), csrf.ErrTokenInvalid)
}
