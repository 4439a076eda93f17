package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Config holds structured logger configuration.
type Config struct {
	Dir         string `env:"LOG_DIR" envDefault:"logs"`
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	MaxFileSize int64  `env:"LOG_MAX_FILE_SIZE" envDefault:"10485760"`
	MaxBackups  int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
}

// New creates a leveled JSON logger writing to daily rotating files.
// The returned close function releases the underlying file handle.
//
// The configured level suppresses lower-priority records inside the slog
// handler, before any formatting or I/O happens. Every record carries the
// process id; records logged with a context carrying a correlation id (see
// middleware.RequestID) carry it too. The logger never returns or raises
// errors: the rotating writer swallows all I/O failures.
func New(cfg Config) (*slog.Logger, func() error) {
	w := NewRotatingWriter(cfg.Dir, cfg.MaxFileSize, cfg.MaxBackups)
	return NewWithWriter(cfg, w), w.Close
}

// NewWithWriter creates a logger writing to an explicit destination.
// Used by tests and by callers that manage the writer lifecycle themselves.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LevelName(level))
				}
			}
			return a
		},
	})

	return slog.New(&contextHandler{Handler: h}).With(slog.Int("pid", os.Getpid()))
}

// NewDiscard returns a logger that drops everything. The default for
// components whose callers did not inject a logger.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// correlationIDContextKey keys the per-request correlation id in contexts.
type correlationIDContextKey struct{}

// ContextWithCorrelationID returns a context carrying the correlation id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, id)
}

// CorrelationIDFromContext extracts the correlation id set by the request id
// middleware, or "" when absent.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDContextKey{}).(string)
	return id
}

// CorrelationIDKey returns the context key used for correlation ids, for
// request contexts that store values by key (handler.Context.SetValue).
func CorrelationIDKey() any {
	return correlationIDContextKey{}
}

// contextHandler stamps each record with the correlation id carried by the
// logging context, so every entry produced while handling one request can be
// tied together afterwards.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if id := CorrelationIDFromContext(ctx); id != "" {
		rec.AddAttrs(slog.String("correlation_id", id))
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
