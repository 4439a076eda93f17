package fingerprint_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/fingerprint"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("deterministic for identical requests", func(t *testing.T) {
		t.Parallel()

		r1 := httptest.NewRequest("GET", "/", nil)
		r1.Header.Set("User-Agent", "Mozilla/5.0")
		r1.Header.Set("Accept-Language", "en-US")

		r2 := httptest.NewRequest("GET", "/", nil)
		r2.Header.Set("User-Agent", "Mozilla/5.0")
		r2.Header.Set("Accept-Language", "en-US")

		assert.Equal(t, fingerprint.Generate(r1), fingerprint.Generate(r2))
	})

	t.Run("differs across user agents", func(t *testing.T) {
		t.Parallel()

		r1 := httptest.NewRequest("GET", "/", nil)
		r1.Header.Set("User-Agent", "Mozilla/5.0")

		r2 := httptest.NewRequest("GET", "/", nil)
		r2.Header.Set("User-Agent", "curl/8.0")

		assert.NotEqual(t, fingerprint.Generate(r1), fingerprint.Generate(r2))
	})

	t.Run("versioned format", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("User-Agent", "Mozilla/5.0")

		fp := fingerprint.Generate(r)
		assert.True(t, strings.HasPrefix(fp, "v1:"))
		assert.Len(t, fp, 35)
	})

	t.Run("ip excluded by default", func(t *testing.T) {
		t.Parallel()

		r1 := httptest.NewRequest("GET", "/", nil)
		r1.Header.Set("User-Agent", "Mozilla/5.0")
		r1.RemoteAddr = "198.51.100.1:1000"

		r2 := httptest.NewRequest("GET", "/", nil)
		r2.Header.Set("User-Agent", "Mozilla/5.0")
		r2.RemoteAddr = "198.51.100.2:2000"

		assert.Equal(t, fingerprint.Generate(r1), fingerprint.Generate(r2))
		assert.NotEqual(t,
			fingerprint.Generate(r1, fingerprint.WithIP()),
			fingerprint.Generate(r2, fingerprint.WithIP()),
		)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("matching fingerprint passes", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("User-Agent", "Mozilla/5.0")

		stored := fingerprint.Generate(r)
		assert.NoError(t, fingerprint.Validate(r, stored))
	})

	t.Run("changed client fails", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("User-Agent", "Mozilla/5.0")
		stored := fingerprint.Generate(r)

		hijacker := httptest.NewRequest("GET", "/", nil)
		hijacker.Header.Set("User-Agent", "curl/8.0")

		assert.ErrorIs(t, fingerprint.Validate(hijacker, stored), fingerprint.ErrMismatch)
	})

	t.Run("malformed stored value", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)

		require.ErrorIs(t, fingerprint.Validate(r, ""), fingerprint.ErrInvalidFingerprint)
		require.ErrorIs(t, fingerprint.Validate(r, "not-a-fingerprint"), fingerprint.ErrInvalidFingerprint)
		require.ErrorIs(t, fingerprint.Validate(r, "v2:0011223344556677889900112233445566"), fingerprint.ErrInvalidFingerprint)
	})
}
