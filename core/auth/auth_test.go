package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/auth"
)

func newStoreWithUser(t *testing.T, username, password string) (*auth.MemoryUserStore, auth.User) {
	t.Helper()

	a := auth.New(auth.NewMemoryUserStore(), auth.WithBcryptCost(4))
	hash, err := a.HashPassword(password)
	require.NoError(t, err)

	user := auth.User{
		ID:           uuid.New(),
		Username:     username,
		Role:         "admin",
		PasswordHash: hash,
	}

	store := auth.NewMemoryUserStore()
	store.Add(user)
	return store, user
}

func TestAuthenticator_Verify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("correct credentials", func(t *testing.T) {
		t.Parallel()

		store, user := newStoreWithUser(t, "editor", "s3cret-passw0rd")
		a := auth.New(store, auth.WithBcryptCost(4))

		got, err := a.Verify(ctx, "editor", "s3cret-passw0rd")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "admin", got.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		store, _ := newStoreWithUser(t, "editor", "s3cret-passw0rd")
		a := auth.New(store, auth.WithBcryptCost(4))

		_, err := a.Verify(ctx, "editor", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		t.Parallel()

		store, _ := newStoreWithUser(t, "editor", "s3cret-passw0rd")
		a := auth.New(store, auth.WithBcryptCost(4))

		_, err := a.Verify(ctx, "nobody", "s3cret-passw0rd")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("username matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		store, user := newStoreWithUser(t, "Editor", "s3cret-passw0rd")
		a := auth.New(store, auth.WithBcryptCost(4))

		got, err := a.Verify(ctx, "editor", "s3cret-passw0rd")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}

func TestAuthenticator_HashPassword(t *testing.T) {
	t.Parallel()

	a := auth.New(auth.NewMemoryUserStore(), auth.WithBcryptCost(4))

	t.Run("hashes differ per call", func(t *testing.T) {
		t.Parallel()

		h1, err := a.HashPassword("password-one")
		require.NoError(t, err)
		h2, err := a.HashPassword("password-one")
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2, "bcrypt salts must differ")
	})

	t.Run("rejects over-long passwords", func(t *testing.T) {
		t.Parallel()

		_, err := a.HashPassword(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
	})
}
