package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/gatekit/core/csrf"
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/logger"
	"github.com/dmitrymomot/gatekit/core/response"
)

// csrfFormField is the form and query parameter name carrying the token.
const csrfFormField = "csrf_token"

// csrfHeaders are checked in order after the body and query; the aliases
// cover the header names common JS frameworks send by default.
var csrfHeaders = []string{"X-CSRF-Token", "X-XSRF-Token", "CSRF-Token"}

// CSRFConfig configures the anti-forgery middleware.
type CSRFConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Service issues and consumes the tokens (required)
	Service *csrf.Service
	// TokenExtractor overrides where the token is read from. The default
	// checks the form body, then the query string, then the headers
	// X-CSRF-Token, X-XSRF-Token, and CSRF-Token.
	TokenExtractor func(ctx handler.Context) string
	// Logger receives security events (default: discard)
	Logger *slog.Logger
	// ErrorHandler defines the rejection response
	// (default: 403 with code CSRF_INVALID)
	ErrorHandler func(ctx handler.Context, err error) handler.Response
}

// CSRF creates an anti-forgery middleware over the given token service.
func CSRF[C handler.Context](service *csrf.Service) handler.Middleware[C] {
	return CSRFWithConfig[C](CSRFConfig{Service: service})
}

// CSRFWithConfig creates an anti-forgery middleware with custom
// configuration. Safe methods (GET, HEAD, OPTIONS, TRACE) pass through;
// state-changing methods must present a valid one-time token bound to the
// current session. Tokens are consumed on every validation attempt, so a
// rejected submission needs a fresh token.
//
// Place it after the Session middleware: tokens are scoped by session ID,
// and a request without a session fails closed.
func CSRFWithConfig[C handler.Context](cfg CSRFConfig) handler.Middleware[C] {
	if cfg.Service == nil {
		panic("csrf middleware: service is required")
	}

	if cfg.TokenExtractor == nil {
		cfg.TokenExtractor = extractCSRFToken
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.NewDiscard()
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, err error) handler.Response {
			return response.Error(response.ErrCSRFInvalid)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()
			if !requiresProtection(r.Method) {
				return next(ctx)
			}

			sess, ok := GetSession(ctx)
			if !ok {
				return cfg.ErrorHandler(ctx, csrf.ErrTokenInvalid)
			}

			token := cfg.TokenExtractor(ctx)
			if err := cfg.Service.Validate(ctx, sess.ID, token); err != nil {
				logger.Security(ctx, cfg.Logger, "csrf validation failed",
					securityEntry(ctx, sess),
					logger.Endpoint(r.URL.Path),
					logger.Method(r.Method),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			return next(ctx)
		}
	}
}

// requiresProtection reports whether the method changes state and therefore
// needs a token.
func requiresProtection(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

// extractCSRFToken reads the token from its transport locations in priority
// order: form body, query string, then headers. PostFormValue only parses
// urlencoded and multipart bodies, so JSON payloads stay untouched.
func extractCSRFToken(ctx handler.Context) string {
	r := ctx.Request()

	if token := r.PostFormValue(csrfFormField); token != "" {
		return token
	}

	if token := r.URL.Query().Get(csrfFormField); token != "" {
		return token
	}

	for _, header := range csrfHeaders {
		if token := r.Header.Get(header); token != "" {
			return token
		}
	}

	return ""
}
