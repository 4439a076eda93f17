package sessiontransport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/core/cookie"
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/logger"
	"github.com/dmitrymomot/gatekit/core/session"
	"github.com/dmitrymomot/gatekit/pkg/clientip"
	"github.com/dmitrymomot/gatekit/pkg/fingerprint"
)

// Cookie provides HTTP cookie-based session transport. The session token is
// stored as a signed cookie value, so a tampered cookie fails verification
// before it ever reaches the session store.
type Cookie struct {
	manager   *session.Manager
	cookieMgr *cookie.Manager
	name      string
	log       *slog.Logger
}

// CookieOption configures the cookie transport.
type CookieOption func(*Cookie)

// WithCookieLogger sets the logger receiving security events such as idle
// expiry of a presented session.
func WithCookieLogger(log *slog.Logger) CookieOption {
	return func(c *Cookie) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCookie creates a cookie-based session transport.
func NewCookie(mgr *session.Manager, cookieMgr *cookie.Manager, name string, opts ...CookieOption) *Cookie {
	c := &Cookie{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
		log:       logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load retrieves the session referenced by the request cookie. A missing,
// invalid, or expired credential degrades to a fresh anonymous session
// instead of an error, so public pages keep working without a cookie. Idle
// expiry of a presented credential is security-logged before degrading,
// distinct from a plain store miss.
func (c *Cookie) Load(ctx handler.Context) (session.Session, error) {
	r := ctx.Request()

	token, err := c.cookieMgr.GetSigned(r, c.name)
	if err != nil {
		return c.newSession(r)
	}

	sess, err := c.manager.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrExpired) {
			logger.Security(ctx, c.log, "session expired",
				logger.SecurityEntry{
					ClientIP:  clientip.GetIP(r),
					UserAgent: r.Header.Get("User-Agent"),
					SessionID: sess.ID.String(),
				},
				logger.UserID(sess.UserID.String()),
				logger.Reason("idle lifetime exceeded"),
			)
		}
		return c.newSession(r)
	}

	return sess, nil
}

// Store persists the session and refreshes the cookie. When the manager
// reports the session deleted, the cookie is removed and
// session.ErrNotAuthenticated is swallowed since the credential cleanup is
// the desired outcome.
func (c *Cookie) Store(ctx handler.Context, sess *session.Session) error {
	if err := c.manager.Store(ctx, sess); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
			return nil
		}
		return err
	}

	maxAge := int(c.manager.IdleTTL().Seconds())
	return c.cookieMgr.SetSigned(ctx.ResponseWriter(), c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(maxAge),
	)
}

// Authenticate binds the loaded session to an identity, rotating its token,
// and writes the rotated token back to the cookie.
func (c *Cookie) Authenticate(ctx handler.Context, sess *session.Session, userID uuid.UUID, username, role string) error {
	if err := sess.Authenticate(userID, username, role); err != nil {
		return err
	}
	return c.Store(ctx, sess)
}

// Logout marks the session deleted and clears the cookie.
func (c *Cookie) Logout(ctx handler.Context, sess *session.Session) error {
	sess.Logout()
	return c.Store(ctx, sess)
}

// newSession creates an anonymous session bound to the request's client
// characteristics.
func (c *Cookie) newSession(r *http.Request) (session.Session, error) {
	return session.New(session.NewSessionParams{
		Fingerprint: fingerprint.Generate(r),
		IP:          clientip.GetIP(r),
		UserAgent:   r.Header.Get("User-Agent"),
	})
}
