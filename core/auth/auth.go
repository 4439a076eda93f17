package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/gatekit/core/logger"
)

// User is the identity record the authenticator verifies credentials
// against.
type User struct {
	ID           uuid.UUID
	Username     string
	Role         string
	PasswordHash string
}

// UserStore resolves usernames to identity records. Implementations return
// ErrUserNotFound for unknown usernames.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (User, error)
}

// ErrUserNotFound is the sentinel UserStore implementations return for
// unknown usernames.
var ErrUserNotFound = errors.New("auth: user not found")

// dummyHash is a valid bcrypt hash compared against when the username is
// unknown, so lookup misses cost the same as password mismatches and the
// response time does not reveal which usernames exist.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Authenticator verifies username/password credentials against a UserStore.
type Authenticator struct {
	users UserStore
	cost  int
	log   *slog.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithBcryptCost overrides the hash cost used by HashPassword.
func WithBcryptCost(cost int) Option {
	return func(a *Authenticator) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			a.cost = cost
		}
	}
}

// WithLogger routes failed credential checks into the security audit stream.
func WithLogger(log *slog.Logger) Option {
	return func(a *Authenticator) {
		if log != nil {
			a.log = log
		}
	}
}

// New creates an authenticator over the given user store.
func New(users UserStore, opts ...Option) *Authenticator {
	a := &Authenticator{
		users: users,
		cost:  bcrypt.DefaultCost,
		log:   logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Verify checks the credentials and returns the matching user. Unknown
// usernames and wrong passwords both yield ErrInvalidCredentials after a
// full-cost bcrypt comparison.
func (a *Authenticator) Verify(ctx context.Context, username, password string) (User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn a comparison anyway to keep timing uniform.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			a.logFailure(ctx, username, "unknown username")
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Join(ErrUserStoreFailed, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logFailure(ctx, username, "wrong password")
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// logFailure records the rejection in the audit stream. The reason stays
// server-side; clients only ever see ErrInvalidCredentials.
func (a *Authenticator) logFailure(ctx context.Context, username, reason string) {
	a.log.LogAttrs(ctx, logger.LevelWarning, "login failed",
		logger.Event("security"),
		slog.String("username", username),
		logger.Reason(reason),
	)
}

// HashPassword hashes a plaintext password for storage.
func (a *Authenticator) HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
