package csrf

import "errors"

var (
	// ErrTokenMissing is returned when no candidate token was presented.
	ErrTokenMissing = errors.New("csrf token missing")
	// ErrTokenInvalid is returned when the candidate is not in the
	// session's token set: never issued, already consumed, or evicted.
	ErrTokenInvalid = errors.New("csrf token invalid")
	// ErrTokenExpired is returned when the candidate was issued longer ago
	// than the TTL. The entry is removed, so retrying cannot succeed.
	ErrTokenExpired = errors.New("csrf token expired")
	// ErrTokenGeneration is returned when random token generation fails.
	ErrTokenGeneration = errors.New("failed to generate csrf token")
)
