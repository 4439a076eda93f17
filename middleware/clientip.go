package middleware

import (
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/pkg/clientip"
)

// clientIPContextKey is used as a key for storing the client IP in request context.
type clientIPContextKey struct{}

// ClientIPConfig configures the client IP extraction middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// TrustedHeaders narrows which proxy headers are consulted. Empty means
	// the full default chain; deployments not behind a CDN should list only
	// the headers their own proxy sets.
	TrustedHeaders []string
	// ValidateFunc allows custom validation of the extracted IP address
	ValidateFunc func(ctx handler.Context, ip string) error
}

// ClientIP creates a middleware that resolves the real client IP from proxy
// headers and stores it in the request context for downstream consumers
// (rate limiting keys, session records, security logs).
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return ClientIPWithConfig[C](ClientIPConfig{})
}

// ClientIPWithConfig creates a client IP middleware with custom configuration.
func ClientIPWithConfig[C handler.Context](cfg ClientIPConfig) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			var ip string
			if len(cfg.TrustedHeaders) > 0 {
				ip = clientip.GetIPFromHeaders(ctx.Request(), cfg.TrustedHeaders)
			} else {
				ip = clientip.GetIP(ctx.Request())
			}

			ctx.SetValue(clientIPContextKey{}, ip)

			if cfg.ValidateFunc != nil {
				if err := cfg.ValidateFunc(ctx, ip); err != nil {
					return response.Error(response.ErrForbidden.WithError(err))
				}
			}

			return next(ctx)
		}
	}
}

// GetClientIP retrieves the client IP address from the request context.
func GetClientIP(ctx handler.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
