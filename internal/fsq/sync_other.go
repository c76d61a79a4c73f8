//go:build !darwin && !linux

package fsq

// SyncDir is a no-op where directories cannot be opened for fsync.
func SyncDir(string) error {
	return nil
}
