//go:build darwin || linux

package lock

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// WithExclusiveFileLock runs fn while holding an exclusive advisory lock on
// lockPath, creating the file if needed. The lock is dropped when fn returns.
//
// Lock a dedicated file, never a label file: flock is per inode and label
// files are replaced by rename.
func WithExclusiveFileLock(lockPath string, fn func() error) error {
	fd, err := unix.Open(lockPath, unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file %s: %w", lockPath, err)
	}
	defer func() { _ = unix.Close(fd) }()

	for {
		err = unix.Flock(fd, unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", lockPath, err)
	}
	defer func() { _ = unix.Flock(fd, unix.LOCK_UN) }()

	return fn()
}
