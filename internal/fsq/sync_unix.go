//go:build darwin || linux

package fsq

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// SyncDir flushes the entries of dir so a rename into it survives a crash.
// Filesystems that cannot fsync a directory are treated as synced.
func SyncDir(dir string) error {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return &os.PathError{Op: "open", Path: dir, Err: err}
	}
	syncErr := retryEINTR(func() error { return unix.Fsync(fd) })
	closeErr := unix.Close(fd)
	switch {
	case syncErr == nil:
	case errors.Is(syncErr, unix.EINVAL), errors.Is(syncErr, unix.ENOTSUP), errors.Is(syncErr, unix.EBADF):
	default:
		return &os.PathError{Op: "fsync", Path: dir, Err: syncErr}
	}
	if closeErr != nil {
		return &os.PathError{Op: "close", Path: dir, Err: closeErr}
	}
	return nil
}

func retryEINTR(fn func() error) error {
	for {
		if err := fn(); !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}
