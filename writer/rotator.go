package writer

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cinderlog/cinder/config"
	"github.com/cinderlog/cinder/errors"
)

// RotatingFileWriter is an io.WriteCloser over a single active file that
// rotates by renaming a numbered backup chain once current_size crosses
// RotationConfig.MaxSize. It tracks bytes written since the file was
// opened or last rotated so rotation decisions never need to stat the
// file.
type RotatingFileWriter struct {
	mu       sync.Mutex
	path     string
	conf     *config.RotationConfig
	file     *os.File
	closed   bool
	size     int64
	degraded bool // set when a rotation fails after the handle is already closed
}

// NewRotatingFileWriter opens path (creating it if absent) and returns a
// writer that rotates it according to conf.
func NewRotatingFileWriter(path string, conf *config.RotationConfig) (*RotatingFileWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	info, statErr := f.Stat()
	var size int64
	if statErr == nil {
		size = info.Size()
	}
	return &RotatingFileWriter{
		path: path,
		conf: conf,
		file: f,
		size: size,
	}, nil
}

// Write appends p to the active file, rotating first if the write would
// not fit within the current size limit (rotation is only policy-driven,
// never a mid-write correctness requirement: MaxSize <= 0 disables it).
func (w *RotatingFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, errors.ErrFileRotationFailed
	}
	if w.degraded {
		return 0, errors.NewFileRotationFailedError(w.path, errors.ErrFileRotationFailed)
	}

	if w.conf != nil && w.conf.MaxSize > 0 && w.size+int64(len(p)) > w.conf.MaxSize && w.size > 0 {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// rotateLocked performs the rotation protocol: close handle, shift the
// numbered backup chain down, move the active file to slot 1, then open a
// fresh active file. A failure after the handle is closed leaves the
// writer degraded rather than silently dropping log data on the floor.
func (w *RotatingFileWriter) rotateLocked() error {
	maxBackups := 0
	if w.conf != nil {
		maxBackups = w.conf.MaxBackups
	}
	if maxBackups < 1 {
		maxBackups = 1 // the active file always moves to slot 1
	}

	if err := w.file.Close(); err != nil {
		w.degraded = true
		return errors.NewFileRotationFailedError(w.path, err)
	}

	for i := maxBackups; i >= 1; i-- {
		src := w.backupName(i - 1)
		dst := w.backupName(i)
		if i == 1 {
			src = w.path
		}
		if err := os.Rename(src, dst); err != nil && !os.IsNotExist(err) {
			w.degraded = true
			return errors.NewFileRotationFailedError(src, err)
		}
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		w.degraded = true
		return errors.NewFileRotationFailedError(w.path, err)
	}
	w.file = f
	w.size = 0
	return nil
}

func (w *RotatingFileWriter) backupName(i int) string {
	if i == 0 {
		return w.path
	}
	return w.path + "." + strconv.Itoa(i)
}

// Flush fsyncs the active file so buffered OS writes reach stable storage.
func (w *RotatingFileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// Close is idempotent: a second call is a no-op returning nil.
func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	err := w.file.Close()
	w.closed = true
	return err
}

// Reinit clears a degraded state and reopens the active file, as spec's
// "subsequent writes fail until reinitialised" requires an explicit
// recovery step rather than silent auto-retry.
func (w *RotatingFileWriter) Reinit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.degraded {
		return nil
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("reinit rotating file writer: %w", err)
	}
	info, statErr := f.Stat()
	if statErr == nil {
		w.size = info.Size()
	}
	w.file = f
	w.closed = false
	w.degraded = false
	return nil
}
