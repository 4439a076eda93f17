package csrf

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Config holds anti-forgery token parameters.
type Config struct {
	// TTL bounds the exposure window of a leaked token.
	TTL time.Duration `env:"CSRF_TOKEN_TTL" envDefault:"30m"`
	// MaxTokens bounds the per-session token set; issuing beyond the
	// bound evicts the oldest token. Prevents unbounded session-state
	// growth from a user refreshing a form many times.
	MaxTokens int `env:"CSRF_MAX_TOKENS" envDefault:"10"`
}

// Service issues and consumes one-time anti-forgery tokens scoped to a
// session. Expired entries are swept lazily on every generate and validate
// call; there is no background job.
type Service struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a token service over the given store.
func NewService(store Store, cfg Config, opts ...Option) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 10
	}

	s := &Service{store: store, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate issues a fresh single-use token for the session and records it,
// purging expired entries first and evicting the oldest beyond the bound.
func (s *Service) Generate(ctx context.Context, sessionID uuid.UUID) (string, error) {
	now := s.now()

	if err := s.store.Purge(ctx, sessionID, now.Add(-s.cfg.TTL)); err != nil {
		return "", err
	}

	token, err := generateToken()
	if err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}

	if err := s.store.Add(ctx, sessionID, token, now, s.cfg.MaxTokens); err != nil {
		return "", err
	}

	return token, nil
}

// Validate consumes the candidate token. It fails closed: an empty
// candidate, an unknown candidate, and an expired one all reject, and in
// every case the entry (if present) is gone afterwards, so a failed attempt
// cannot be retried with the same value. Success is possible exactly once
// per token.
func (s *Service) Validate(ctx context.Context, sessionID uuid.UUID, candidate string) error {
	if candidate == "" {
		return ErrTokenMissing
	}

	now := s.now()

	if err := s.store.Purge(ctx, sessionID, now.Add(-s.cfg.TTL)); err != nil {
		return err
	}

	issuedAt, found, err := s.store.Consume(ctx, sessionID, candidate)
	if err != nil {
		return err
	}
	if !found {
		return ErrTokenInvalid
	}

	if now.Sub(issuedAt) > s.cfg.TTL {
		return ErrTokenExpired
	}

	return nil
}

// DestroySession drops the session's entire token set. Called when the
// session is torn down so orphaned sets do not linger.
func (s *Service) DestroySession(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.DeleteAll(ctx, sessionID)
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.cfg.TTL }

// generateToken creates a 256-bit random token encoded as base64url
// without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
