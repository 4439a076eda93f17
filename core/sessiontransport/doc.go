// Package sessiontransport moves session credentials between HTTP requests
// and the session layer.
//
// Two transports are provided:
//
// Cookie carries the opaque session token as an HMAC-signed cookie. Load
// degrades gracefully: a missing, tampered, or expired credential yields a
// fresh anonymous session rather than an error, so unauthenticated pages
// render without ceremony. Store persists the session through
// session.Manager, which refreshes activity and rotates the token on its
// regeneration schedule; the rotated token is written back to the cookie in
// the same response.
//
//	sessMgr := session.NewManager(store, sessCfg)
//	cookieMgr, _ := cookie.New([]string{secret})
//	transport := sessiontransport.NewCookie(sessMgr, cookieMgr, "__session")
//
// JWT serves API clients that cannot hold cookies. Issue signs a short-lived
// HS256 bearer token carrying the session identity; Extract verifies the
// Authorization header and materializes an ephemeral, store-less session
// from the claims. The signature check pins the HMAC family, so algorithm
// confusion attacks fail at parse time.
//
//	transport, err := sessiontransport.NewJWT(cfg.SecretKey)
//	token, err := transport.Issue(sess)      // after login
//	sess, err := transport.Extract(r)        // on each API request
//
// The session middleware accepts either transport; handlers see the same
// session.Session regardless of how the credential arrived.
package sessiontransport
