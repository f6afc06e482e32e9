package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/timeboxd/timeboxd/internal/logging"
)

// ErrHeld is returned when another process holds the lock
var ErrHeld = errors.New("another timeboxd instance is running")

// InstanceLock keeps the timer and idle drivers to one process per home
type InstanceLock struct {
	file *os.File
	path string
}

// Acquire takes the lock at path without blocking
func Acquire(path string) (*InstanceLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := tryLockFile(file); err != nil {
		file.Close()
		if errors.Is(err, errWouldBlock) {
			return nil, ErrHeld
		}
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	// Record the owner for troubleshooting; the lock itself is what matters
	if err := file.Truncate(0); err == nil {
		_, _ = file.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	logging.Logger.Debug("Instance lock acquired", "path", path, "pid", os.Getpid())
	return &InstanceLock{file: file, path: path}, nil
}

// Release drops the lock
func (l *InstanceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	defer func() { l.file = nil }()

	if err := unlockFile(l.file); err != nil {
		l.file.Close()
		return fmt.Errorf("failed to unlock %s: %w", l.path, err)
	}
	logging.Logger.Debug("Instance lock released", "path", l.path)
	return l.file.Close()
}
