package sessiontransport

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/core/session"
	"github.com/dmitrymomot/gatekit/pkg/clientip"
	"github.com/dmitrymomot/gatekit/pkg/fingerprint"
	"github.com/dmitrymomot/gatekit/pkg/jwt"
)

// bearerRe extracts the credential from an Authorization header. The scheme
// match is case-insensitive and tolerates extra whitespace, per RFC 6750.
var bearerRe = regexp.MustCompile(`^(?i:Bearer)\s+(\S+)$`)

// JWT provides stateless bearer-token session transport for API clients
// that cannot hold cookies. The JWT carries the identity claims directly;
// Extract verifies the signature and materializes an ephemeral session from
// them, so no store round-trip is needed.
type JWT struct {
	service   *jwt.Service
	issuer    string
	accessTTL time.Duration
}

// JWTOption configures the JWT transport.
type JWTOption func(*JWT)

// WithJWTIssuer sets the issuer claim stamped on generated tokens.
func WithJWTIssuer(issuer string) JWTOption {
	return func(t *JWT) {
		if issuer != "" {
			t.issuer = issuer
		}
	}
}

// WithJWTAccessTTL sets the lifetime of generated tokens.
func WithJWTAccessTTL(ttl time.Duration) JWTOption {
	return func(t *JWT) {
		if ttl > 0 {
			t.accessTTL = ttl
		}
	}
}

// NewJWT creates a bearer-token session transport signing with the given
// key. The key must be at least 32 bytes.
func NewJWT(signingKey string, opts ...JWTOption) (*JWT, error) {
	service, err := jwt.NewFromString(signingKey)
	if err != nil {
		return nil, err
	}

	t := &JWT{
		service:   service,
		issuer:    "gatekit",
		accessTTL: 15 * time.Minute,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Extract verifies the Authorization bearer token and materializes a
// session from its claims. The session is ephemeral and never persisted;
// the bearer string doubles as its transport token.
func (t *JWT) Extract(r *http.Request) (session.Session, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return session.Session{}, ErrNoToken
	}

	m := bearerRe.FindStringSubmatch(authHeader)
	if m == nil {
		return session.Session{}, ErrInvalidToken
	}

	var claims jwt.SessionClaims
	if err := t.service.Parse(m[1], &claims); err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) || errors.Is(err, jwt.ErrInvalidToken) {
			return session.Session{}, errors.Join(ErrInvalidToken, err)
		}
		return session.Session{}, errors.Join(ErrTransportFailed, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return session.Session{}, ErrInvalidToken
	}

	sessionID := uuid.New()
	if claims.ID != "" {
		if parsed, err := uuid.Parse(claims.ID); err == nil {
			sessionID = parsed
		}
	}

	now := time.Now()
	issuedAt := now
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return session.Session{
		ID:     sessionID,
		UserID: userID,
		// The bearer token itself is the transport credential, so the
		// materialized session counts as authenticated.
		Token:          m[1],
		Username:       claims.Username,
		Role:           claims.Role,
		Fingerprint:    fingerprint.Generate(r),
		IP:             clientip.GetIP(r),
		UserAgent:      r.Header.Get("User-Agent"),
		LoginAt:        issuedAt,
		LastActivityAt: now,
		RegeneratedAt:  now,
		CreatedAt:      issuedAt,
	}, nil
}

// Issue signs a bearer token carrying the session's identity. The token
// expires after the configured access TTL independently of the session's
// idle lifetime.
func (t *JWT) Issue(sess session.Session) (string, error) {
	if !sess.IsAuthenticated() {
		return "", session.ErrNotAuthenticated
	}

	now := time.Now()
	claims := jwt.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID.String(),
			Subject:   sess.UserID.String(),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
		Username: sess.Username,
		Role:     sess.Role,
	}

	token, err := t.service.Generate(claims)
	if err != nil {
		return "", errors.Join(ErrTransportFailed, err)
	}
	return token, nil
}
