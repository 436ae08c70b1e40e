package testsupport

import (
	"testing"

	"github.com/gofrs/flock"
)

// HoldLock acquires an exclusive file lock at path and returns its release func.
func HoldLock(t testing.TB, path string) func() {
	t.Helper()
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		t.Fatalf("lock %s: %v", path, err)
	}
	if !ok {
		t.Fatalf("lock %s already held", path)
	}
	return func() {
		_ = lock.Unlock()
	}
}
