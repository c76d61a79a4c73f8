//go:build !darwin && !linux

package lock

// WithExclusiveFileLock runs fn without locking on platforms lacking flock.
// Concurrent watchers sharing a labels directory are unsupported there.
func WithExclusiveFileLock(_ string, fn func() error) error {
	return fn()
}
