package sessiontransport

import (
	"time"

	"github.com/dmitrymomot/gatekit/core/cookie"
	"github.com/dmitrymomot/gatekit/core/session"
)

// CookieConfig provides environment-based configuration for cookie
// transport.
type CookieConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
}

// NewCookieFromConfig creates a cookie-based session transport from
// configuration. The session.Manager and cookie.Manager are injected by the
// caller.
func NewCookieFromConfig(cfg CookieConfig, mgr *session.Manager, cookieMgr *cookie.Manager) *Cookie {
	name := cfg.CookieName
	if name == "" {
		name = "__session"
	}
	return NewCookie(mgr, cookieMgr, name)
}

// JWTConfig provides environment-based configuration for bearer-token
// transport.
type JWTConfig struct {
	// SecretKey is the HMAC signing secret. Required, no default.
	SecretKey string `env:"JWT_SECRET"`

	// AccessTTL is the bearer token lifetime.
	AccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`

	// Issuer is the iss claim stamped on generated tokens.
	Issuer string `env:"JWT_ISSUER" envDefault:"gatekit"`
}

// NewJWTFromConfig creates a bearer-token session transport from
// configuration.
func NewJWTFromConfig(cfg JWTConfig) (*JWT, error) {
	return NewJWT(cfg.SecretKey,
		WithJWTIssuer(cfg.Issuer),
		WithJWTAccessTTL(cfg.AccessTTL),
	)
}
