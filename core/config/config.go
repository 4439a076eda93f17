package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]any)

	loadDotEnv = sync.OnceFunc(func() {
		// Missing .env files are expected outside local development.
		_ = godotenv.Load()
	})
)

// Load parses environment variables into cfg. Each configuration type is
// loaded once per process; subsequent calls for the same type return the
// cached value. A .env file in the working directory is loaded on first use.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil target")
	}

	loadDotEnv()

	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(*cfg)
	if cached, ok := cache[t]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	cache[t] = *cfg
	return nil
}

// MustLoad is Load but panics on failure. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
