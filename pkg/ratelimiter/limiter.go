package ratelimiter

import (
	"context"
	"strconv"
	"time"
)

// Config holds fixed-window rate limiting parameters.
type Config struct {
	// Limit is the maximum number of requests per identifier per window.
	Limit int `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	// Window is the fixed window length.
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"3600s"`
}

// Store persists per-window counters. Implementations must make Incr a
// single atomic read-modify-write: two concurrent calls for the same key
// must never undercount, and a counter at the limit must not be
// incremented further.
type Store interface {
	// Incr increments the counter for key unless it has reached limit.
	// Returns the counter value after the call and whether the increment
	// was applied. ttl bounds the counter's lifetime in storage.
	Incr(ctx context.Context, key string, ttl time.Duration, limit int) (count int64, allowed bool, err error)
	// Get reads the counter without modifying it.
	Get(ctx context.Context, key string) (int64, error)
	// Reset deletes the counter for key.
	Reset(ctx context.Context, key string) error
}

// Result reports the outcome of one rate-limit check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Window    time.Duration
	allowed   bool
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool { return r.allowed }

// RetryAfter returns how long until the current window resets, or zero when
// the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	if d := time.Until(r.ResetAt); d > 0 {
		return d
	}
	return 0
}

// FixedWindow counts requests per identifier within discrete,
// non-overlapping time windows.
type FixedWindow struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// Option configures a FixedWindow limiter.
type Option func(*FixedWindow)

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(fw *FixedWindow) {
		if now != nil {
			fw.now = now
		}
	}
}

// New creates a fixed-window limiter backed by the given store. The window
// must be at least one second: window indexes are computed in whole seconds.
func New(store Store, cfg Config, opts ...Option) (*FixedWindow, error) {
	if store == nil || cfg.Limit <= 0 || cfg.Window < time.Second {
		return nil, ErrInvalidConfig
	}

	fw := &FixedWindow{store: store, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// Allow records one request for key and reports whether it is within the
// limit. A rejected request does not increment the counter.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	now := fw.now()
	windowKey, resetAt := fw.windowKey(key, now)

	// TTL runs past the window end so Status can still observe the counter
	// briefly; expiry is what bounds storage growth in shared stores.
	count, allowed, err := fw.store.Incr(ctx, windowKey, fw.cfg.Window*2, fw.cfg.Limit)
	if err != nil {
		return nil, err
	}

	return fw.result(count, allowed, resetAt), nil
}

// Status reports the current window's usage without consuming a request.
func (fw *FixedWindow) Status(ctx context.Context, key string) (*Result, error) {
	now := fw.now()
	windowKey, resetAt := fw.windowKey(key, now)

	count, err := fw.store.Get(ctx, windowKey)
	if err != nil {
		return nil, err
	}

	return fw.result(count, count < int64(fw.cfg.Limit), resetAt), nil
}

// Reset clears the current window's counter for key. Administrative
// override; does not touch past windows.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	windowKey, _ := fw.windowKey(key, fw.now())
	return fw.store.Reset(ctx, windowKey)
}

// Limit returns the configured per-window limit.
func (fw *FixedWindow) Limit() int { return fw.cfg.Limit }

// Window returns the configured window length.
func (fw *FixedWindow) Window() time.Duration { return fw.cfg.Window }

// windowKey derives the storage key for the window containing now and the
// instant that window ends.
func (fw *FixedWindow) windowKey(key string, now time.Time) (string, time.Time) {
	windowSecs := int64(fw.cfg.Window.Seconds())
	index := now.Unix() / windowSecs
	resetAt := time.Unix((index+1)*windowSecs, 0)
	return key + ":" + strconv.FormatInt(index, 10), resetAt
}

func (fw *FixedWindow) result(count int64, allowed bool, resetAt time.Time) *Result {
	remaining := fw.cfg.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Limit:     fw.cfg.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
		Window:    fw.cfg.Window,
		allowed:   allowed,
	}
}
