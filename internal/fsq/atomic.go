package fsq

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces dir/filename with data so readers only ever see
// the old or the new content. It returns the final path.
func WriteFileAtomic(dir, filename string, data []byte, perm os.FileMode) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := writeTemp(dir, filename, data, perm)
	if err != nil {
		return "", err
	}
	finalPath := filepath.Join(dir, filename)
	if err := os.Rename(tmp, finalPath); err != nil {
		return "", discard(tmp, err)
	}
	if err := SyncDir(dir); err != nil {
		return "", err
	}
	return finalPath, nil
}

// CreateFileAtomic is WriteFileAtomic that fails with os.ErrExist instead
// of replacing an existing file.
func CreateFileAtomic(dir, filename string, data []byte, perm os.FileMode) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := writeTemp(dir, filename, data, perm)
	if err != nil {
		return "", err
	}
	finalPath := filepath.Join(dir, filename)
	// Link refuses to overwrite; the temp name is dropped either way.
	linkErr := os.Link(tmp, finalPath)
	if err := discard(tmp, nil); err != nil {
		return "", err
	}
	if linkErr != nil {
		return "", linkErr
	}
	if err := SyncDir(dir); err != nil {
		return "", err
	}
	return finalPath, nil
}

// writeTemp writes a synced hidden sibling of filename and returns its path.
func writeTemp(dir, filename string, data []byte, perm os.FileMode) (path string, err error) {
	file, err := os.CreateTemp(dir, "."+filename+".tmp-*")
	if err != nil {
		return "", err
	}
	path = file.Name()
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
			path = ""
		}
	}()
	if err = file.Chmod(perm); err != nil {
		return path, err
	}
	if _, err = file.Write(data); err != nil {
		return path, err
	}
	return path, file.Sync()
}

func discard(path string, primary error) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		if primary == nil {
			return err
		}
		return fmt.Errorf("%w (cleanup: %v)", primary, err)
	}
	return primary
}
