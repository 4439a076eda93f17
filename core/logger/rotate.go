package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RotatingWriter appends log lines to a file named by the current date and
// rotates it through numbered backups when it exceeds a size threshold.
// Layout inside dir:
//
//	2026-08-31.log     active file
//	2026-08-31.1.log   most recent backup
//	2026-08-31.N.log   oldest retained backup
//
// Every failure (directory creation, open, write, rename) is swallowed:
// Write always reports success so logging can never fail a request. All
// appends and rotations share one mutex, making rotation a critical section
// within the process; the file is opened O_APPEND so concurrent processes
// do not interleave partial lines.
type RotatingWriter struct {
	dir        string
	maxSize    int64
	maxBackups int
	now        func() time.Time

	mu       sync.Mutex
	file     *os.File
	fileDate string
	size     int64
}

// RotatingWriterOption configures a RotatingWriter.
type RotatingWriterOption func(*RotatingWriter)

// WithClock overrides the time source. Used by tests to cross date
// boundaries without waiting.
func WithClock(now func() time.Time) RotatingWriterOption {
	return func(w *RotatingWriter) {
		if now != nil {
			w.now = now
		}
	}
}

// NewRotatingWriter creates a writer appending to date-named files in dir.
// maxSize is the rotation threshold in bytes; maxBackups bounds the number
// of retained backup generations per date.
func NewRotatingWriter(dir string, maxSize int64, maxBackups int, opts ...RotatingWriterOption) *RotatingWriter {
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	if maxBackups <= 0 {
		maxBackups = 5
	}

	w := &RotatingWriter{
		dir:        dir,
		maxSize:    maxSize,
		maxBackups: maxBackups,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write appends p to the active file, rotating first when the append would
// push the file past the size threshold. Errors are discarded; the returned
// values always report success.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	date := w.now().Format(time.DateOnly)

	if w.file == nil || w.fileDate != date {
		w.openActive(date)
	}

	if w.file != nil && w.size+int64(len(p)) > w.maxSize && w.size > 0 {
		w.rotate()
		w.openActive(date)
	}

	if w.file != nil {
		if n, err := w.file.Write(p); err == nil {
			w.size += int64(n)
		}
	}

	return len(p), nil
}

// Close releases the active file handle.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}

// openActive opens (creating if needed) the active file for date.
// Caller holds the mutex.
func (w *RotatingWriter) openActive(date string) {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(w.activePath(date), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}

	w.file = f
	w.fileDate = date
	w.size = 0
	if info, err := f.Stat(); err == nil {
		w.size = info.Size()
	}
}

// rotate shifts existing backups up by one, deletes the oldest, and moves
// the active file into the .1 slot. Caller holds the mutex.
func (w *RotatingWriter) rotate() {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}

	date := w.fileDate

	_ = os.Remove(w.backupPath(date, w.maxBackups))
	for i := w.maxBackups - 1; i >= 1; i-- {
		_ = os.Rename(w.backupPath(date, i), w.backupPath(date, i+1))
	}
	_ = os.Rename(w.activePath(date), w.backupPath(date, 1))
}

func (w *RotatingWriter) activePath(date string) string {
	return filepath.Join(w.dir, date+".log")
}

func (w *RotatingWriter) backupPath(date string, n int) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s.%d.log", date, n))
}
