package binary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireUpdateLock(t *testing.T) {
	t.Run("creates lock file", func(t *testing.T) {
		dir := t.TempDir()

		lock, err := acquireUpdateLock(context.Background(), dir)
		if err != nil {
			t.Fatalf("acquireUpdateLock() error = %v", err)
		}
		defer lock.Release()

		data, err := os.ReadFile(filepath.Join(dir, lockFileName))
		if err != nil {
			t.Fatalf("lock file not created: %v", err)
		}
		if len(data) == 0 {
			t.Error("lock file should record pid and timestamp")
		}
	})

	t.Run("prevents concurrent updates", func(t *testing.T) {
		dir := t.TempDir()

		lock, err := acquireUpdateLock(context.Background(), dir)
		if err != nil {
			t.Fatalf("first acquireUpdateLock() error = %v", err)
		}
		defer lock.Release()

		if _, err := acquireUpdateLock(context.Background(), dir); !errors.Is(err, ErrUpdateInProgress) {
			t.Errorf("expected ErrUpdateInProgress, got %v", err)
		}
	})

	t.Run("released lock can be reacquired", func(t *testing.T) {
		dir := t.TempDir()

		lock, err := acquireUpdateLock(context.Background(), dir)
		if err != nil {
			t.Fatal(err)
		}
		if err := lock.Release(); err != nil {
			t.Fatalf("Release() error = %v", err)
		}
		if err := lock.Release(); err != nil {
			t.Errorf("second Release() error = %v", err)
		}

		lock, err = acquireUpdateLock(context.Background(), dir)
		if err != nil {
			t.Fatalf("reacquire error = %v", err)
		}
		lock.Release()
	})

	t.Run("takes over stale lock", func(t *testing.T) {
		dir := t.TempDir()
		lockPath := filepath.Join(dir, lockFileName)
		if err := os.WriteFile(lockPath, []byte("pid=1\n"), 0600); err != nil {
			t.Fatal(err)
		}
		old := time.Now().Add(-2 * StaleLockThreshold)
		if err := os.Chtimes(lockPath, old, old); err != nil {
			t.Fatal(err)
		}

		lock, err := acquireUpdateLock(context.Background(), dir)
		if err != nil {
			t.Fatalf("acquireUpdateLock() error = %v", err)
		}
		lock.Release()
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := acquireUpdateLock(ctx, t.TempDir()); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("creates directory if needed", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", ".download")

		lock, err := acquireUpdateLock(context.Background(), dir)
		if err != nil {
			t.Fatalf("acquireUpdateLock() error = %v", err)
		}
		lock.Release()
	})
}
