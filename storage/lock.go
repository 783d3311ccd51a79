package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// lockPath returns the path of the lock file guarding path.
func lockPath(path string) string {
	return path + ".lock"
}

// withLock runs fn while holding an exclusive flock next to path, so two
// duchess processes sharing a data file never interleave their writes.
func withLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	lockFile, err := os.OpenFile(lockPath(path), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}

// unchanged reports whether path already holds exactly data.
func unchanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read existing file: %w", err)
	}
	return bytes.Equal(existing, data), nil
}
