// Package jwt wraps HMAC-SHA256 JSON Web Token signing and verification for
// bearer-credential authentication.
//
// The Service pins the signing method to HMAC, so tokens signed with other
// algorithms (or none at all) are rejected regardless of their header.
// Registered time claims are validated during Parse.
//
//	service, err := jwt.NewFromString(cfg.JWTSecret)
//	if err != nil {
//		return err
//	}
//
//	var claims jwt.SessionClaims
//	if err := service.Parse(bearer, &claims); err != nil {
//		// reject: invalid signature, expired, malformed
//	}
package jwt
