package session

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence interface for session records.
// Implementations must handle concurrent access safely; concurrent requests
// from the same user's open tabs race with last-writer-wins semantics.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	GetByToken(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes sessions idle past the given lifetime and
	// returns the count of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)
}
