package jwt

import (
	"errors"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// minKeyLen guards against weak HMAC keys; HS256 keys should carry at least
// 256 bits of entropy.
const minKeyLen = 32

var (
	// ErrSigningKeyTooShort is returned when the signing key is shorter than 256 bits.
	ErrSigningKeyTooShort = errors.New("signing key must be at least 32 bytes")
	// ErrInvalidToken is returned for malformed, unsigned, or tampered tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token's exp claim is in the past.
	ErrExpiredToken = errors.New("token expired")
)

// Service signs and verifies HMAC-SHA256 JSON Web Tokens.
type Service struct {
	signingKey []byte
}

// New creates a JWT service with the given signing key.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) < minKeyLen {
		return nil, ErrSigningKeyTooShort
	}
	return &Service{signingKey: signingKey}, nil
}

// NewFromString creates a JWT service from a string signing key.
func NewFromString(signingKey string) (*Service, error) {
	return New([]byte(signingKey))
}

// Generate signs the claims into a compact token string.
func (s *Service) Generate(claims jwtlib.Claims) (string, error) {
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Parse verifies the token's signature and registered time claims (exp, nbf,
// iat) and unmarshals the payload into claims. Only HMAC-signed tokens are
// accepted; an attacker cannot downgrade to "none" or swap in an RSA key.
func (s *Service) Parse(tokenString string, claims jwtlib.Claims) error {
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return errors.Join(ErrExpiredToken, err)
		}
		return errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}
