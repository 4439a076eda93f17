package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle: retrieval with idle-expiry validation,
// activity refresh, periodic token regeneration, and persistence.
type Manager struct {
	store Store
	cfg   Config
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, cfg Config) *Manager {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Hour
	}
	return &Manager{store: store, cfg: cfg}
}

// GetByToken retrieves a session by transport token and validates its idle
// lifetime. An idle-expired session is deleted from the store and reported
// as ErrExpired; the dead session is returned alongside the error so the
// caller can record which session expired.
func (m *Manager) GetByToken(ctx context.Context, token string) (Session, error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if sess.IsIdleExpired(m.cfg.IdleTTL) {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return *sess, errors.Join(ErrExpired, err)
		}
		return *sess, ErrExpired
	}

	return *sess, nil
}

// GetByID retrieves a session by its stable ID and validates idle expiry.
func (m *Manager) GetByID(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if sess.IsIdleExpired(m.cfg.IdleTTL) {
		return Session{}, ErrExpired
	}

	return *sess, nil
}

// Store persists the session according to its state: deleted sessions are
// removed (returning ErrNotAuthenticated so transports clear credentials),
// live sessions get their activity refreshed, their token rotated when the
// regeneration interval elapsed, and are saved if anything changed. The
// session is mutated in place so transports observe the rotated token.
func (m *Manager) Store(ctx context.Context, sess *Session) error {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrDeleteSession, err)
		}
		return ErrNotAuthenticated
	}

	// Throttle pure activity refreshes so every request does not hit the
	// store; any other modification always persists.
	if time.Since(sess.LastActivityAt) >= m.cfg.TouchInterval {
		sess.Touch()
	}

	if sess.ShouldRegenerate(m.cfg.RegenerateInterval) {
		if err := sess.Regenerate(); err != nil {
			return err
		}
	}

	if sess.IsModified() {
		if err := m.store.Save(ctx, sess); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
	}

	return nil
}

// Destroy deletes the session immediately. Used on hijack signals where
// waiting for the request to finish would leave the session live.
func (m *Manager) Destroy(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes all idle-expired sessions from the store.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// IdleTTL returns the configured idle lifetime.
func (m *Manager) IdleTTL() time.Duration { return m.cfg.IdleTTL }
