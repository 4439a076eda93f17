package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with in-process maps. Suitable for tests and
// single-instance deployments; shared deployments use the Redis store.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]Session
	byToken map[string]uuid.UUID
	idleTTL time.Duration
}

// NewMemoryStore creates an in-memory session store. idleTTL governs which
// sessions DeleteExpired considers dead.
func NewMemoryStore(idleTTL time.Duration) *MemoryStore {
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	return &MemoryStore{
		byID:    make(map[uuid.UUID]Session),
		byToken: make(map[string]uuid.UUID),
		idleTTL: idleTTL,
	}
}

// GetByID implements Store.
func (ms *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sess, ok := ms.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// GetByToken implements Store.
func (ms *MemoryStore) GetByToken(ctx context.Context, token string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	id, ok := ms.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	sess, ok := ms.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Save implements Store. Last writer wins on concurrent saves of the same
// session.
func (ms *MemoryStore) Save(ctx context.Context, sess *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if prev := sess.PreviousToken(); prev != "" && prev != sess.Token {
		delete(ms.byToken, prev)
	}

	stored := *sess
	stored.isModified = false
	stored.prevToken = ""

	ms.byID[sess.ID] = stored
	ms.byToken[sess.Token] = sess.ID
	return nil
}

// Delete implements Store.
func (ms *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	sess, ok := ms.byID[id]
	if !ok {
		return ErrNotFound
	}

	delete(ms.byToken, sess.Token)
	delete(ms.byID, id)
	return nil
}

// DeleteExpired implements Store.
func (ms *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var removed int64
	for id, sess := range ms.byID {
		if sess.IsIdleExpired(ms.idleTTL) {
			delete(ms.byToken, sess.Token)
			delete(ms.byID, id)
			removed++
		}
	}
	return removed, nil
}
