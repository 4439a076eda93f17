package auth

import (
	"context"
	"strings"
	"sync"
)

// MemoryUserStore is an in-memory UserStore for tests and small
// deployments. Usernames are matched case-insensitively.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

// Add registers or replaces a user record.
func (s *MemoryUserStore) Add(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[strings.ToLower(user.Username)] = user
}

// FindByUsername implements UserStore.
func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[strings.ToLower(username)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}
