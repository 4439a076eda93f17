package logger

import (
	"context"
	"log/slog"
	"time"
)

// SecurityEntry carries the request identity attached to every security
// event for forensic review.
type SecurityEntry struct {
	ClientIP  string
	UserAgent string
	SessionID string
}

// Security logs a security event. Security events bypass the usual level
// choice: they are always logged at warning so a production threshold of
// warning or below retains the full audit trail.
func Security(ctx context.Context, log *slog.Logger, msg string, entry SecurityEntry, attrs ...slog.Attr) {
	if log == nil {
		return
	}

	all := append([]slog.Attr{
		Event("security"),
		ClientIP(entry.ClientIP),
		UserAgent(entry.UserAgent),
		SessionID(entry.SessionID),
	}, attrs...)

	log.LogAttrs(ctx, LevelWarning, msg, all...)
}

// APIAccess logs one API access entry: endpoint, method, response code and,
// when non-zero, the handling duration.
func APIAccess(ctx context.Context, log *slog.Logger, endpoint, method string, status int, duration time.Duration) {
	if log == nil {
		return
	}

	attrs := []slog.Attr{
		Event("api_access"),
		Endpoint(endpoint),
		Method(method),
		StatusCode(status),
	}
	if duration > 0 {
		attrs = append(attrs, Duration(duration))
	}

	log.LogAttrs(ctx, LevelInfo, "API access", attrs...)
}
