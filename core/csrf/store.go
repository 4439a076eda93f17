package csrf

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists per-session token sets. Implementations must keep Consume
// one-shot under concurrency: of two concurrent consumers of the same
// token, exactly one may observe it.
type Store interface {
	// Add records a freshly issued token. When the set already holds
	// maxTokens entries, the oldest is evicted.
	Add(ctx context.Context, sessionID uuid.UUID, token string, issuedAt time.Time, maxTokens int) error
	// Consume removes the token from the set and returns its issue time.
	// found is false when the token is not in the set.
	Consume(ctx context.Context, sessionID uuid.UUID, token string) (issuedAt time.Time, found bool, err error)
	// Purge drops tokens issued strictly before the cutoff; a token issued
	// exactly at the cutoff is still within its TTL and must survive.
	Purge(ctx context.Context, sessionID uuid.UUID, cutoff time.Time) error
	// DeleteAll drops the session's whole token set. Called on logout.
	DeleteAll(ctx context.Context, sessionID uuid.UUID) error
}
