package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the task file lock.
var ErrLocked = errors.New("task file is locked by another process")

// Lock is an advisory exclusive lock on a task file.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes a non-blocking exclusive lock on path + ".lock".
// Locking is opt-in; nothing in Load or Save checks for it.
func AcquireLock(path string) (*Lock, error) {
	lockPath := path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), dirPerm); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", lockPath, err)
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return &Lock{fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Unlock releases the lock. The lock file is left in place.
func (l *Lock) Unlock() error {
	return l.fl.Unlock()
}
