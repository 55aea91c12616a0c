package organizer

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the destination root while a run places files.
// The leading dot keeps it out of runs whose source is the destination.
const LockFileName = ".organize.lock"

func acquireLock(dest string) (*flock.Flock, error) {
	lockPath := filepath.Join(dest, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrLocked, "prepare", "acquire lock", lockPath, err)
	}
	if !ok {
		return nil, Wrap(ErrLocked, "prepare", "acquire lock", fmt.Sprintf("another organize run is writing to %s", dest), nil)
	}
	return lock, nil
}
