package jwt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/jwt"
)

const testKey = "test-signing-key-32-characters!!"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects short keys", func(t *testing.T) {
		t.Parallel()

		_, err := jwt.NewFromString("short")
		assert.ErrorIs(t, err, jwt.ErrSigningKeyTooShort)
	})

	t.Run("accepts 32-byte keys", func(t *testing.T) {
		t.Parallel()

		_, err := jwt.NewFromString(testKey)
		assert.NoError(t, err)
	})
}

func TestService_GenerateParse(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString(testKey)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		token, err := svc.Generate(jwt.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Username: "editor",
			Role:     "admin",
		})
		require.NoError(t, err)

		var claims jwt.SessionClaims
		require.NoError(t, svc.Parse(token, &claims))
		assert.Equal(t, userID.String(), claims.Subject)
		assert.Equal(t, "editor", claims.Username)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(jwt.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})
		require.NoError(t, err)

		var claims jwt.SessionClaims
		assert.ErrorIs(t, svc.Parse(token, &claims), jwt.ErrExpiredToken)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		t.Parallel()

		other, err := jwt.NewFromString("different-signing-key-32-chars!!")
		require.NoError(t, err)

		token, err := other.Generate(jwt.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		require.NoError(t, err)

		var claims jwt.SessionClaims
		assert.ErrorIs(t, svc.Parse(token, &claims), jwt.ErrInvalidToken)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		t.Parallel()

		var claims jwt.SessionClaims
		assert.ErrorIs(t, svc.Parse("definitely.not.ajwt", &claims), jwt.ErrInvalidToken)

		// The old scheme accepted any sufficiently long opaque string;
		// unsigned values must fail now.
		assert.Error(t, svc.Parse("0123456789abcdef0123456789abcdef0123456789abcdef", &claims))
	})
}
