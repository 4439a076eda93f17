package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/logger"
)

func TestRotatingWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to date-named file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		w := logger.NewRotatingWriter(dir, 1024, 3,
			logger.WithClock(func() time.Time { return now }))
		defer w.Close()

		n, err := w.Write([]byte("line one\n"))
		require.NoError(t, err)
		assert.Equal(t, 9, n)

		data, err := os.ReadFile(filepath.Join(dir, "2026-08-31.log"))
		require.NoError(t, err)
		assert.Equal(t, "line one\n", string(data))
	})

	t.Run("new date starts a new file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
		w := logger.NewRotatingWriter(dir, 1024, 3,
			logger.WithClock(func() time.Time { return now }))
		defer w.Close()

		_, _ = w.Write([]byte("yesterday\n"))
		now = now.Add(2 * time.Minute)
		_, _ = w.Write([]byte("today\n"))

		old, err := os.ReadFile(filepath.Join(dir, "2026-08-31.log"))
		require.NoError(t, err)
		assert.Equal(t, "yesterday\n", string(old))

		fresh, err := os.ReadFile(filepath.Join(dir, "2026-09-01.log"))
		require.NoError(t, err)
		assert.Equal(t, "today\n", string(fresh))
	})

	t.Run("rotates at size threshold", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		w := logger.NewRotatingWriter(dir, 20, 3,
			logger.WithClock(func() time.Time { return now }))
		defer w.Close()

		_, _ = w.Write([]byte("0123456789012345\n")) // 17 bytes, fits
		_, _ = w.Write([]byte("overflow\n"))         // would exceed 20, rotates first

		backup, err := os.ReadFile(filepath.Join(dir, "2026-08-31.1.log"))
		require.NoError(t, err)
		assert.Equal(t, "0123456789012345\n", string(backup))

		active, err := os.ReadFile(filepath.Join(dir, "2026-08-31.log"))
		require.NoError(t, err)
		assert.Equal(t, "overflow\n", string(active))
	})

	t.Run("backups shift and the oldest is dropped", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		w := logger.NewRotatingWriter(dir, 4, 2,
			logger.WithClock(func() time.Time { return now }))
		defer w.Close()

		// Each write overflows the 4-byte threshold, forcing a rotation per write.
		for _, line := range []string{"aaaa\n", "bbbb\n", "cccc\n", "dddd\n"} {
			_, _ = w.Write([]byte(line))
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)

		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{
			"2026-08-31.log",
			"2026-08-31.1.log",
			"2026-08-31.2.log",
		}, names, "only maxBackups generations retained, got %v", names)

		// The most recent backup holds the most recent rotated content.
		backup1, err := os.ReadFile(filepath.Join(dir, "2026-08-31.1.log"))
		require.NoError(t, err)
		assert.Equal(t, "cccc\n", string(backup1))
	})

	t.Run("write failures are swallowed", func(t *testing.T) {
		t.Parallel()

		// A directory path that cannot be created.
		blocked := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

		w := logger.NewRotatingWriter(filepath.Join(blocked, "logs"), 1024, 3)
		defer w.Close()

		n, err := w.Write([]byte("lost line\n"))
		assert.NoError(t, err)
		assert.Equal(t, 10, n)
	})

	t.Run("appends to existing file across reopens", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }

		w := logger.NewRotatingWriter(dir, 1024, 3, logger.WithClock(clock))
		_, _ = w.Write([]byte("first\n"))
		require.NoError(t, w.Close())

		w = logger.NewRotatingWriter(dir, 1024, 3, logger.WithClock(clock))
		_, _ = w.Write([]byte("second\n"))
		require.NoError(t, w.Close())

		data, err := os.ReadFile(filepath.Join(dir, "2026-08-31.log"))
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(data))
	})
}

func TestNew_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	log, closeFn := logger.New(logger.Config{
		Dir:         dir,
		Level:       "info",
		MaxFileSize: 1 << 20,
		MaxBackups:  3,
	})

	log.Info("service started")
	require.NoError(t, closeFn())

	name := time.Now().Format(time.DateOnly) + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "service started"))
}
