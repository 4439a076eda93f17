package middleware

import (
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/pkg/fingerprint"
)

// fingerprintContextKey is used as a key for storing the device fingerprint in request context.
type fingerprintContextKey struct{}

// FingerprintConfig configures the device fingerprinting middleware.
type FingerprintConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Options tune which request characteristics feed the fingerprint
	Options []fingerprint.Option
	// ValidateFunc allows custom validation of the generated fingerprint
	ValidateFunc func(ctx handler.Context, fp string) error
}

// Fingerprint creates a middleware that derives the client fingerprint once
// per request and stores it in context, so the session layer does not
// recompute it on every check.
func Fingerprint[C handler.Context]() handler.Middleware[C] {
	return FingerprintWithConfig[C](FingerprintConfig{})
}

// FingerprintWithConfig creates a fingerprinting middleware with custom configuration.
func FingerprintWithConfig[C handler.Context](cfg FingerprintConfig) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			fp := fingerprint.Generate(ctx.Request(), cfg.Options...)
			ctx.SetValue(fingerprintContextKey{}, fp)

			if cfg.ValidateFunc != nil {
				if err := cfg.ValidateFunc(ctx, fp); err != nil {
					return response.Error(response.ErrBadRequest.WithError(err))
				}
			}

			return next(ctx)
		}
	}
}

// GetFingerprint retrieves the device fingerprint from the request context.
func GetFingerprint(ctx handler.Context) (string, bool) {
	fp, ok := ctx.Value(fingerprintContextKey{}).(string)
	return fp, ok
}
