package binary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// StaleLockThreshold is the age after which an update lock left by a
	// crashed process is taken over.
	StaleLockThreshold = 10 * time.Minute

	lockFileName = "update.lock"
)

// ErrUpdateInProgress indicates another process holds the update lock.
var ErrUpdateInProgress = errors.New("another rclone update is in progress")

// updateLock serializes updates sharing a download directory. It does
// not guard the installed executable against concurrent launches.
type updateLock struct {
	path string
	file *os.File
}

// acquireUpdateLock creates the lock file in dir with O_CREATE|O_EXCL.
func acquireUpdateLock(ctx context.Context, dir string) (*updateLock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(dir, lockFileName)

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		if !isLockStale(lockPath) {
			return nil, ErrUpdateInProgress
		}
		os.Remove(lockPath)
		file, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
		if err != nil {
			return nil, ErrUpdateInProgress
		}
	}

	lockData := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(lockData); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock data: %w", err)
	}

	return &updateLock{path: lockPath, file: file}, nil
}

// Release removes the lock file. It is safe to call more than once.
func (l *updateLock) Release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if l.path != "" {
		err := os.Remove(l.path)
		l.path = ""
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
	}

	return nil
}

func isLockStale(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) > StaleLockThreshold
}
