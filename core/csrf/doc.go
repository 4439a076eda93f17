// Package csrf issues and validates single-use anti-forgery tokens bound to
// a session.
//
// Each session owns a bounded set of outstanding tokens. Generate creates a
// 256-bit random token, records it against the session, and evicts the
// oldest entry once the set reaches its bound. Validate consumes the
// candidate token: the entry is removed whether validation succeeds or
// fails, so a token can never be replayed, and concurrent submissions of
// the same token succeed at most once.
//
// Tokens expire after a configurable TTL (30 minutes by default). There is
// no background sweeper; expired entries are purged lazily whenever the
// session generates or validates a token, and the Redis store additionally
// lets abandoned sets age out via key TTLs.
//
// # Usage
//
//	svc := csrf.NewService(csrf.NewMemoryStore(), csrf.Config{})
//
//	// When rendering a form:
//	token, err := svc.Generate(ctx, session.ID)
//
//	// When handling the submission:
//	if err := svc.Validate(ctx, session.ID, submitted); err != nil {
//		// reject the request
//	}
//
// For multi-instance deployments back the service with NewRedisStore so all
// instances share the token sets.
//
// Validation failures map to ErrTokenMissing, ErrTokenInvalid, and
// ErrTokenExpired; callers typically translate all three to the same
// client-facing 403 so the error class leaks nothing.
package csrf
