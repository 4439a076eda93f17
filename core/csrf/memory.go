package csrf

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	token    string
	issuedAt time.Time
}

// MemoryStore keeps token sets in process memory. Suitable for
// single-instance deployments and tests.
type MemoryStore struct {
	mu sync.Mutex
	// sets holds per-session entries ordered oldest first, so bound
	// eviction is a slice shift.
	sets map[uuid.UUID][]memoryEntry
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[uuid.UUID][]memoryEntry)}
}

// Add records a token for the session, evicting the oldest entries when the
// set would exceed maxTokens.
func (s *MemoryStore) Add(_ context.Context, sessionID uuid.UUID, token string, issuedAt time.Time, maxTokens int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := append(s.sets[sessionID], memoryEntry{token: token, issuedAt: issuedAt})
	if maxTokens > 0 && len(set) > maxTokens {
		set = set[len(set)-maxTokens:]
	}
	s.sets[sessionID] = set
	return nil
}

// Consume removes the token from the session's set. Exactly one caller
// observes found=true for a given token; the mutex arbitrates races.
func (s *MemoryStore) Consume(_ context.Context, sessionID uuid.UUID, token string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[sessionID]
	for i, e := range set {
		if e.token == token {
			s.sets[sessionID] = append(set[:i], set[i+1:]...)
			if len(s.sets[sessionID]) == 0 {
				delete(s.sets, sessionID)
			}
			return e.issuedAt, true, nil
		}
	}
	return time.Time{}, false, nil
}

// Purge drops entries issued before cutoff. An entry issued exactly at the
// cutoff is kept: a token is valid through the full length of its TTL.
func (s *MemoryStore) Purge(_ context.Context, sessionID uuid.UUID, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[sessionID]
	kept := set[:0]
	for _, e := range set {
		if !e.issuedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(s.sets, sessionID)
	} else {
		s.sets[sessionID] = kept
	}
	return nil
}

// DeleteAll removes the session's token set.
func (s *MemoryStore) DeleteAll(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets, sessionID)
	return nil
}

// Len reports the number of live tokens for the session. Test helper.
func (s *MemoryStore) Len(sessionID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sets[sessionID])
}
