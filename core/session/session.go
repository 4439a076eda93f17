package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents one actor's live request context. Anonymous sessions
// carry uuid.Nil as UserID until a credential check succeeds.
type Session struct {
	// ID is the stable unique session identifier; it never changes during
	// the session lifecycle.
	ID uuid.UUID `json:"id"`

	// Token is the opaque transport credential (32 bytes, base64url).
	// It rotates periodically while the ID stays stable, narrowing the
	// window a stolen token remains useful.
	Token string `json:"token"`

	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username,omitempty"`
	Role     string    `json:"role,omitempty"`

	// Fingerprint is the client fingerprint recorded at creation; every
	// subsequent request must present the same one.
	Fingerprint string `json:"fingerprint"`

	IP        string `json:"ip"`
	UserAgent string `json:"user_agent,omitempty"`

	LoginAt        time.Time `json:"login_at,omitzero"`
	LastActivityAt time.Time `json:"last_activity_at"`
	RegeneratedAt  time.Time `json:"regenerated_at"`
	CreatedAt      time.Time `json:"created_at"`
	DeletedAt      time.Time `json:"deleted_at,omitzero"`

	// prevToken remembers the token replaced by the last rotation so
	// stores can drop the stale token index on save.
	prevToken string
	// isModified tracks whether the session needs saving.
	isModified bool
}

// NewSessionParams contains parameters for creating a new session.
type NewSessionParams struct {
	Fingerprint string
	IP          string
	UserAgent   string
}

// New creates an anonymous session with a generated ID and token, marked
// modified and ready to be saved.
func New(params NewSessionParams) (Session, error) {
	if params.IP == "" {
		return Session{}, ErrMissingIP
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		ID:             uuid.New(),
		Token:          token,
		UserID:         uuid.Nil,
		Fingerprint:    params.Fingerprint,
		IP:             params.IP,
		UserAgent:      params.UserAgent,
		LastActivityAt: now,
		RegeneratedAt:  now,
		CreatedAt:      now,
		isModified:     true,
	}, nil
}

// Authenticate binds the session to an authenticated identity. The token is
// rotated so any credential observed pre-login stops working.
func (s *Session) Authenticate(userID uuid.UUID, username, role string) error {
	if err := s.rotateToken(); err != nil {
		return err
	}

	now := time.Now()
	s.UserID = userID
	s.Username = username
	s.Role = role
	s.LoginAt = now
	s.LastActivityAt = now
	s.isModified = true
	return nil
}

// Touch refreshes the last-activity timestamp. Called on every successful
// authentication check so the idle clock restarts.
func (s *Session) Touch() {
	s.LastActivityAt = time.Now()
	s.isModified = true
}

// ShouldRegenerate reports whether the periodic token rotation is due.
func (s *Session) ShouldRegenerate(interval time.Duration) bool {
	return interval > 0 && time.Since(s.RegeneratedAt) >= interval
}

// Regenerate rotates the transport token without changing identity or ID.
func (s *Session) Regenerate() error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.RegeneratedAt = time.Now()
	return nil
}

// Logout marks the session for deletion.
func (s *Session) Logout() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// IsAuthenticated reports whether the session carries a logged-in identity.
func (s Session) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != "" && s.DeletedAt.IsZero()
}

// IsDeleted reports whether the session is marked for deletion.
func (s Session) IsDeleted() bool { return !s.DeletedAt.IsZero() }

// IsModified reports whether the session needs saving.
func (s Session) IsModified() bool { return s.isModified }

// IsIdleExpired reports whether the gap since the last activity exceeds the
// idle lifetime.
func (s Session) IsIdleExpired(idleTTL time.Duration) bool {
	return time.Since(s.LastActivityAt) > idleTTL
}

// PreviousToken returns the token replaced by the last rotation, or "".
// Stores use it to drop stale token indexes.
func (s Session) PreviousToken() string { return s.prevToken }

func (s *Session) rotateToken() error {
	token, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	if s.prevToken == "" {
		s.prevToken = s.Token
	}
	s.Token = token
	s.isModified = true
	return nil
}

// generateToken creates a 256-bit random token encoded as base64url
// without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
