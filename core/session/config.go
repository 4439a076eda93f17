package session

import "time"

// Config holds session manager configuration.
type Config struct {
	// IdleTTL is the maximum allowed gap between two authenticated
	// actions before the session counts as expired.
	IdleTTL time.Duration `env:"SESSION_LIFETIME" envDefault:"3600s"`
	// RegenerateInterval is how often the transport token rotates on an
	// active session. 0 disables rotation.
	RegenerateInterval time.Duration `env:"SESSION_REGENERATE_INTERVAL" envDefault:"5m"`
	// TouchInterval throttles activity-refresh writes to the store.
	// 0 writes on every request.
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"1m"`
}
