package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/cookie"
)

const testSecret = "test-secret-key-32-characters!!!"
const testSecret2 = "another-secret-key-32-chars!!!!!"

func requestWithSetCookie(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New([]string{"too-short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "name", "value123"))

		value, err := m.Get(requestWithSetCookie(w), "name")
		require.NoError(t, err)
		assert.Equal(t, "value123", value)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		_, err = m.Get(httptest.NewRequest("GET", "/", nil), "absent")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("secure defaults applied", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "name", "v"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "/", cookies[0].Path)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("oversized cookie rejected", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		err = m.Set(w, "big", strings.Repeat("x", 5000))
		assert.ErrorIs(t, err, cookie.ErrCookieTooLarge)
	})
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "session", "token-value"))

		value, err := m.GetSigned(requestWithSetCookie(w), "session")
		require.NoError(t, err)
		assert.Equal(t, "token-value", value)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "session", "token-value"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)

		// Flip the signed payload; the signature no longer matches.
		parts := strings.SplitN(cookies[0].Value, "|", 2)
		require.Len(t, parts, 2)
		forged := "Zm9yZ2Vk" + "|" + parts[1]

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: forged})

		_, err = m.GetSigned(r, "session")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("plain value rejected", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "unsigned"})

		_, err = m.GetSigned(r, "session")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("key rotation verifies old signatures", func(t *testing.T) {
		t.Parallel()

		oldMgr, err := cookie.New([]string{testSecret2})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, oldMgr.SetSigned(w, "session", "sticky"))

		// New deployments sign with the new secret but still verify the old.
		newMgr, err := cookie.New([]string{testSecret, testSecret2})
		require.NoError(t, err)

		value, err := newMgr.GetSigned(requestWithSetCookie(w), "session")
		require.NoError(t, err)
		assert.Equal(t, "sticky", value)
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Delete(w, "session")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
