package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/logger"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Limiter is the rate limiting implementation to use (required)
	Limiter *ratelimiter.FixedWindow
	// KeyExtractor derives the counter key from the request. Default:
	// "user:ip" for authenticated sessions so users behind a shared NAT get
	// separate budgets, plain client IP otherwise.
	KeyExtractor func(ctx handler.Context) string
	// ErrorHandler defines the response for rejected requests
	// (default: 429 with code RATE_LIMIT_EXCEEDED)
	ErrorHandler func(ctx handler.Context, result *ratelimiter.Result) handler.Response
	// Logger receives limiter backend failures (default: discard)
	Logger *slog.Logger
	// DisableHeaders suppresses the X-RateLimit-* headers that are
	// otherwise added to every response passing through the limiter
	DisableHeaders bool
}

// RateLimit creates a rate limiting middleware. Every request consumes one
// unit of the per-key budget; rejected requests do not consume, so a client
// hammering a closed window cannot extend its own penalty.
// Panics if no limiter is provided.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = defaultRateLimitKey
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, result *ratelimiter.Result) handler.Response {
			return response.Error(response.ErrRateLimitExceeded)
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.NewDiscard()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			key := cfg.KeyExtractor(ctx)
			result, err := cfg.Limiter.Allow(ctx, key)
			if err != nil {
				// A broken limiter backend must not take the service down
				// with it; fail open and log the failure.
				cfg.Logger.LogAttrs(ctx, logger.LevelError,
					"rate limiter unavailable", logger.Error(err))
				return next(ctx)
			}

			if !result.Allowed() {
				resp := cfg.ErrorHandler(ctx, result)
				if cfg.DisableHeaders {
					return resp
				}
				return wrapWithRateLimitHeaders(resp, result)
			}

			resp := next(ctx)

			if cfg.DisableHeaders {
				return resp
			}

			return wrapWithRateLimitHeaders(resp, result)
		}
	}
}

// defaultRateLimitKey scopes counters to user+IP for authenticated traffic
// and to the client IP alone for anonymous traffic.
func defaultRateLimitKey(ctx handler.Context) string {
	ip, ok := GetClientIP(ctx)
	if !ok {
		ip = ctx.Request().RemoteAddr
	}

	if sess, ok := GetSession(ctx); ok && sess.IsAuthenticated() {
		return sess.UserID.String() + ":" + ip
	}
	return ip
}

// wrapWithRateLimitHeaders decorates the response with the standard rate
// limit headers:
//
//   - X-RateLimit-Limit: maximum requests per window
//   - X-RateLimit-Remaining: requests left in the current window (never negative)
//   - X-RateLimit-Reset: unix timestamp when the window resets
//   - X-RateLimit-Window: window length in seconds
//   - Retry-After: seconds until retry is worthwhile (only when rejected)
func wrapWithRateLimitHeaders(resp handler.Response, result *ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		w.Header().Set("X-RateLimit-Window", strconv.Itoa(int(result.Window.Seconds())))

		if !result.Allowed() && result.RetryAfter() > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter().Seconds())))
		}

		return resp(w, r)
	}
}
