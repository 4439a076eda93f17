// Package ratelimiter provides fixed-window rate limiting with pluggable
// storage backends.
//
// Requests are counted per identifier within discrete, non-overlapping
// windows of fixed length; once a window's count reaches the limit, further
// requests in that window are rejected without incrementing the counter.
//
//	store := ratelimiter.NewMemoryStore()
//
//	limiter, err := ratelimiter.New(store, ratelimiter.Config{
//		Limit:  100,
//		Window: time.Hour,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, "203.0.113.7")
//	if err != nil {
//		return err
//	}
//	if !result.Allowed() {
//		// reject with 429; result.RetryAfter() guides the client
//	}
//
// # Storage Backends
//
// MemoryStore keeps counters in-process under a mutex and deletes stale
// counters opportunistically with small probability on each call. Suitable
// for single-instance deployments and tests.
//
// RedisStore shares counters across processes. The increment runs as a Lua
// script so the check-and-increment is a single atomic operation; counters
// expire via TTL. Use this wherever more than one process handles requests.
//
// # Key Selection
//
// Prefer "userID:clientIP" for authenticated traffic so one user's abuse
// cannot exhaust a NAT'd office IP, and the client IP alone otherwise.
//
// Status and Reset read and clear the current window without consuming a
// request, for introspection endpoints and administrative overrides.
package ratelimiter
