package middleware

import (
	"log/slog"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/logger"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/core/session"
)

type sessionKey struct{}

// SessionTransport moves session credentials between the request and the
// session layer. Implemented by sessiontransport.Cookie.
type SessionTransport interface {
	Load(handler.Context) (session.Session, error)
	Store(handler.Context, *session.Session) error
}

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Transport implements Load and Store for session credentials (required)
	Transport SessionTransport
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// ErrorHandler defines a custom response for session store failures
	ErrorHandler func(ctx handler.Context, err error) handler.Response
}

// Session creates middleware that loads the session from the transport,
// exposes it in the request context, and persists it after the handler
// runs. Persisting is where activity refresh and periodic token rotation
// happen, so this middleware should wrap every route that touches sessions.
func Session[C handler.Context](transport SessionTransport) handler.Middleware[C] {
	return SessionWithConfig[C](SessionConfig{Transport: transport})
}

// SessionWithConfig creates a session middleware with custom configuration.
//
// The middleware:
//   - Loads the session from the transport (load errors degrade to a new
//     anonymous session rather than failing the request)
//   - Stores the session in the request context for handlers and the
//     auth/CSRF middleware
//   - Persists the session after the handler, delegating store errors to
//     the ErrorHandler
func SessionWithConfig[C handler.Context](cfg SessionConfig) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.NewDiscard()
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, err error) handler.Response {
			return response.Error(response.ErrInternalServerError.WithError(err))
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.LogAttrs(ctx, logger.LevelError,
					"session load failed", logger.Error(err))
				sess = session.Session{}
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			// The handler may have replaced the session (login, logout).
			current, ok := GetSession(ctx)
			if !ok {
				return resp
			}

			if err := cfg.Transport.Store(ctx, &current); err != nil {
				cfg.Logger.LogAttrs(ctx, logger.LevelError,
					"session store failed", logger.Error(err), logger.SessionID(current.ID.String()))
				return cfg.ErrorHandler(ctx, err)
			}
			ctx.SetValue(sessionKey{}, current)

			return resp
		}
	}
}

// GetSession retrieves the session from the request context.
func GetSession(ctx handler.Context) (session.Session, bool) {
	if ctx == nil {
		return session.Session{}, false
	}
	sess, ok := ctx.Value(sessionKey{}).(session.Session)
	return sess, ok
}

// MustGetSession retrieves the session or panics. Use under routes wrapped
// by the session middleware where absence is a programming error.
func MustGetSession(ctx handler.Context) session.Session {
	sess, ok := GetSession(ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession replaces the session in the request context. Handlers use it
// after login or logout so the middleware persists the new state.
func SetSession(ctx handler.Context, sess session.Session) {
	ctx.SetValue(sessionKey{}, sess)
}
