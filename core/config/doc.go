// Package config provides type-safe environment variable loading with
// per-type caching. It loads .env files on first use and parses env vars
// into struct fields via the caarlos0/env library.
//
//	type SessionConfig struct {
//		Lifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"3600s"`
//	}
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is loaded only once per process lifetime; repeated
// loads of the same type return the cached value, so components can load
// their own config independently without re-reading the environment.
package config
