package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/logger"
)

// statusCode is implemented by errors carrying their own HTTP status, such
// as response.HTTPError.
type statusCode interface {
	StatusCode() int
}

// LoggingConfig configures the API access logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// SlowRequestThreshold additionally logs requests slower than this at
	// warning level (default: 5s, zero disables)
	SlowRequestThreshold time.Duration
}

// Logging creates an access-log middleware with default configuration.
// Every handled request produces one api_access entry carrying endpoint,
// method, status code, and handling duration; the correlation id from the
// request ID middleware rides along automatically.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates an access-log middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates an access-log middleware with custom configuration.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.SlowRequestThreshold == 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
				err := resp(rec, r)
				duration := time.Since(start)

				status := rec.status
				if err != nil {
					// The error handler runs after this closure, so read the
					// status the error carries; terminal security rejections
					// (401, 403, 429) must be audited with their real code.
					var sc statusCode
					if errors.As(err, &sc) {
						status = sc.StatusCode()
					} else {
						status = http.StatusInternalServerError
					}
				}

				logger.APIAccess(ctx, cfg.Logger, r.URL.Path, r.Method, status, duration)

				if cfg.SlowRequestThreshold > 0 && duration >= cfg.SlowRequestThreshold {
					cfg.Logger.LogAttrs(ctx, logger.LevelWarning, "slow request",
						logger.Endpoint(r.URL.Path),
						logger.Method(r.Method),
						logger.Duration(duration),
					)
				}

				return err
			}
		}
	}
}

// statusRecorder captures the status code written by the response.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
