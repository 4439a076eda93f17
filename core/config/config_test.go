package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/config"
)

type limiterConfig struct {
	Requests int           `env:"TEST_RATE_LIMIT_REQUESTS" envDefault:"100"`
	Window   time.Duration `env:"TEST_RATE_LIMIT_WINDOW" envDefault:"3600s"`
}

type loggerConfig struct {
	Level string `env:"TEST_LOG_LEVEL" envDefault:"info"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var cfg limiterConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, 100, cfg.Requests)
		assert.Equal(t, time.Hour, cfg.Window)
	})

	t.Run("env overrides default", func(t *testing.T) {
		t.Setenv("TEST_LOG_LEVEL", "debug")

		var cfg loggerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "debug", cfg.Level)
	})

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("TEST_LOG_LEVEL", "warning")

		var first loggerConfig
		require.NoError(t, config.Load(&first))

		// A changed environment is not observed after the first load.
		t.Setenv("TEST_LOG_LEVEL", "error")
		var second loggerConfig
		require.NoError(t, config.Load(&second))

		assert.Equal(t, first.Level, second.Level)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("nil target", func(t *testing.T) {
		assert.Error(t, config.Load[limiterConfig](nil))
	})
}
