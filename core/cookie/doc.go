// Package cookie manages HTTP cookies with HMAC signing and key rotation.
//
// The Manager applies secure defaults (Path=/, HttpOnly, SameSite=Lax) and
// enforces the 4KB browser limit on serialized cookies. Signed cookies pair
// the value with an HMAC-SHA256 signature so tampering is detected on read.
//
// Multiple secrets support zero-downtime key rotation: the first secret
// signs new cookies, and verification tries every secret, so cookies signed
// before a rotation keep working until they expire.
//
//	mgr, err := cookie.New([]string{newSecret, oldSecret})
//	if err != nil {
//		return err
//	}
//
//	err = mgr.SetSigned(w, "__session", token,
//		cookie.WithSecure(true),
//		cookie.WithMaxAge(3600),
//	)
//
//	token, err := mgr.GetSigned(r, "__session")
//
// The session transport builds on SetSigned/GetSigned; plain Set/Get exist
// for values that carry no trust.
package cookie
