package middleware

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/logger"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/core/session"
	"github.com/dmitrymomot/gatekit/core/sessiontransport"
	"github.com/dmitrymomot/gatekit/pkg/fingerprint"
)

// RequireAuthConfig configures the authentication gate.
type RequireAuthConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Manager destroys sessions on hijack signals. Optional but strongly
	// recommended: without it a fingerprint mismatch only rejects the
	// request, leaving the session alive.
	Manager *session.Manager
	// Bearer enables the Authorization header fallback for API clients.
	// When the context carries no authenticated session, a valid bearer
	// token materializes one for the duration of the request.
	Bearer *sessiontransport.JWT
	// ValidateFingerprint controls the hijack check against the fingerprint
	// recorded at session creation (default: true via RequireAuth)
	ValidateFingerprint bool
	// FingerprintOptions must mirror the options used when the stored
	// fingerprint was generated
	FingerprintOptions []fingerprint.Option
	// Logger receives security events (default: discard)
	Logger *slog.Logger
	// ErrorHandler defines the rejection response
	// (default: 401 with code AUTHENTICATION_REQUIRED)
	ErrorHandler func(ctx handler.Context, err error) handler.Response
}

// RequireAuth creates an authentication gate with fingerprint validation
// enabled. Place it after the Session middleware on protected routes.
func RequireAuth[C handler.Context](cfg RequireAuthConfig) handler.Middleware[C] {
	cfg.ValidateFingerprint = true
	return RequireAuthWithConfig[C](cfg)
}

// RequireAuthWithConfig creates an authentication gate with the
// configuration as given.
//
// The gate:
//   - Accepts an authenticated session from the request context
//   - Falls back to a verified Authorization bearer token when configured
//   - Validates the client fingerprint against the one bound to the
//     session; a mismatch is treated as hijack, the session is destroyed
//     and the request rejected
//   - Logs every rejection as a security event with endpoint and method
func RequireAuthWithConfig[C handler.Context](cfg RequireAuthConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewDiscard()
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, err error) handler.Response {
			return response.Error(response.ErrAuthenticationRequired)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()

			sess, ok := GetSession(ctx)
			if (!ok || !sess.IsAuthenticated()) && cfg.Bearer != nil {
				bearerSess, err := cfg.Bearer.Extract(r)
				if err == nil {
					// Ephemeral session for this request only; it is not
					// stored in the session context slot, so the session
					// middleware never persists it.
					ctx.SetValue(bearerSessionKey{}, bearerSess)
					sess, ok = bearerSess, true
				}
			}

			if !ok || !sess.IsAuthenticated() {
				logger.Security(ctx, cfg.Logger, "unauthenticated access attempt",
					securityEntry(ctx, sess),
					logger.Endpoint(r.URL.Path),
					logger.Method(r.Method),
					logger.Reason("no credentials"),
				)
				return cfg.ErrorHandler(ctx, session.ErrNotAuthenticated)
			}

			if cfg.ValidateFingerprint && sess.Fingerprint != "" {
				if err := fingerprint.Validate(r, sess.Fingerprint, cfg.FingerprintOptions...); err != nil {
					logger.Security(ctx, cfg.Logger, "session hijack suspected",
						securityEntry(ctx, sess),
						logger.Endpoint(r.URL.Path),
						logger.Method(r.Method),
						logger.UserID(sess.UserID.String()),
						logger.Reason("fingerprint mismatch"),
						slog.String("expected_fingerprint", sess.Fingerprint),
						slog.String("presented_fingerprint", fingerprint.Generate(r, cfg.FingerprintOptions...)),
					)

					if cfg.Manager != nil {
						if err := cfg.Manager.Destroy(ctx, sess.ID); err != nil {
							cfg.Logger.LogAttrs(ctx, logger.LevelError,
								"failed to destroy hijacked session",
								logger.Error(err), logger.SessionID(sess.ID.String()))
						}
					}
					// Drop the session from the context so the session
					// middleware does not resurrect it on the way out.
					ctx.SetValue(sessionKey{}, nil)

					return cfg.ErrorHandler(ctx, session.ErrFingerprintMismatch)
				}
			}

			return next(ctx)
		}
	}
}

// bearerSessionKey stores the request-scoped session materialized from a
// bearer token.
type bearerSessionKey struct{}

// GetBearerSession retrieves the session materialized from a bearer token,
// if the request authenticated that way.
func GetBearerSession(ctx handler.Context) (session.Session, bool) {
	sess, ok := ctx.Value(bearerSessionKey{}).(session.Session)
	return sess, ok
}

// AuthenticatedSession returns the session the request authenticated with,
// regardless of transport: the context session when present, otherwise the
// bearer-materialized one.
func AuthenticatedSession(ctx handler.Context) (session.Session, bool) {
	if sess, ok := GetSession(ctx); ok && sess.IsAuthenticated() {
		return sess, true
	}
	return GetBearerSession(ctx)
}

func securityEntry(ctx handler.Context, sess session.Session) logger.SecurityEntry {
	ip, _ := GetClientIP(ctx)
	if ip == "" {
		ip = ctx.Request().RemoteAddr
	}

	entry := logger.SecurityEntry{
		ClientIP:  ip,
		UserAgent: ctx.Request().Header.Get("User-Agent"),
	}
	if sess.ID != uuid.Nil {
		entry.SessionID = sess.ID.String()
	}
	return entry
}
