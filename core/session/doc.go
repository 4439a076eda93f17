// Package session manages authenticated request contexts: creation on
// successful credential checks, validation with idle expiry and client
// fingerprint binding, periodic token regeneration, and teardown.
//
// A Session carries a stable ID and a rotating opaque Token. The token is
// what travels in cookies or headers; it rotates every RegenerateInterval
// (and on login) so a stolen token's useful window stays short, while the ID
// anchors server-side state like CSRF token sets across rotations.
//
// A session stays valid only while the gap between two authenticated
// actions is at most the idle lifetime; every successful check refreshes
// the activity clock. The Manager owns those rules:
//
//	store := session.NewMemoryStore(cfg.IdleTTL) // or NewRedisStore
//	manager := session.NewManager(store, cfg)
//
//	sess, err := manager.GetByToken(ctx, token)
//	switch {
//	case errors.Is(err, session.ErrExpired):
//		// idle lifetime exceeded; store record already removed
//	case errors.Is(err, session.ErrNotFound):
//		// unknown token
//	}
//
// Fingerprint validation happens in the middleware layer, which has the
// request; the package only records the fingerprint bound at creation.
//
// Store implementations: MemoryStore for tests and single instances,
// RedisStore for shared state across processes.
package session
