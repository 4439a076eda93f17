// Package middleware provides the request-security chain: request
// identification, client IP resolution, device fingerprinting, rate
// limiting, session handling, authentication gates, CSRF protection, and
// access logging.
//
// All middleware follow the same conventions: a plain constructor with
// defaults, a WithConfig variant, an optional Skip predicate, and a
// Get/Set accessor pair for any state the middleware stores in the request
// context.
//
// # Ordering
//
// The middleware are designed to compose in this order:
//
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Use(middleware.ClientIP[*router.Context]())
//	r.Use(middleware.Fingerprint[*router.Context]())
//	r.Use(middleware.Logging[*router.Context]())
//	r.Use(middleware.RateLimit[*router.Context](rateLimitCfg))
//	r.Use(middleware.Session[*router.Context](transport))
//
//	protected := r.Group("/app")
//	protected.Use(middleware.RequireAuth[*router.Context](authCfg))
//	protected.Use(middleware.CSRF[*router.Context](csrfService))
//
// RequestID must run first so every later log line carries the correlation
// id. ClientIP precedes RateLimit because the default limiter key is the
// resolved client IP, not the socket address. Session precedes RequireAuth
// and CSRF: the gate inspects the loaded session, and CSRF tokens are
// scoped by session ID.
//
// API routes that authenticate with bearer tokens skip the Session and
// CSRF middleware and configure RequireAuth with a Bearer transport:
//
//	api := r.Group("/api")
//	api.Use(middleware.RequireAuth[*router.Context](middleware.RequireAuthConfig{
//		Bearer: jwtTransport,
//		Logger: log,
//	}))
//
// # Security events
//
// RequireAuth and CSRF log rejections through logger.Security, so failed
// logins, suspected hijacks, and forged submissions land in the same audit
// stream with client IP, user agent, and session id attached.
package middleware
