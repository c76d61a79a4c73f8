//go:build darwin || linux

package lock

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWithExclusiveFileLockSerializes(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".threadlabel.lock")

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithExclusiveFileLock(path, func() error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("lock: %v", err)
			}
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxSeen)
	}
}

func TestWithExclusiveFileLockReturnsFnError(t *testing.T) {
	want := errors.New("write failed")
	err := WithExclusiveFileLock(filepath.Join(t.TempDir(), "l"), func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestWithExclusiveFileLockMissingDir(t *testing.T) {
	err := WithExclusiveFileLock(filepath.Join(t.TempDir(), "nope", "l"), func() error { return nil })
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
