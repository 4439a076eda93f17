package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// RegisteredClaims re-exports the standard claim set so callers embedding it
// do not import the underlying library directly.
type RegisteredClaims = jwtlib.RegisteredClaims

// NumericDate re-exports the JWT timestamp type.
type NumericDate = jwtlib.NumericDate

// NewNumericDate wraps a time.Time as a JWT timestamp claim.
func NewNumericDate(t time.Time) *NumericDate {
	return jwtlib.NewNumericDate(t)
}

// SessionClaims is the claim set carried by bearer credentials that stand in
// for an interactive session. Subject holds the user id.
type SessionClaims struct {
	RegisteredClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}
