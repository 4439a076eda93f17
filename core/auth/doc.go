// Package auth verifies username/password credentials against a pluggable
// user store.
//
// Passwords are hashed with bcrypt. Verification is deliberately opaque:
// an unknown username and a wrong password both return
// ErrInvalidCredentials, and the unknown-username path still performs a
// full-cost bcrypt comparison so response timing does not enumerate
// accounts.
//
//	authn := auth.New(userStore)
//
//	user, err := authn.Verify(ctx, username, password)
//	if errors.Is(err, auth.ErrInvalidCredentials) {
//		// reject login
//	}
//
// After a successful Verify the caller binds the identity to a session via
// the session transport, which rotates the session token so credentials
// observed before login stop working.
package auth
