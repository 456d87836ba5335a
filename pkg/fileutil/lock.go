package fileutil

import (
	"github.com/gofrs/flock"

	"github.com/thoreinstein/cec/internal/errors"
)

// WithLock runs fn while holding an exclusive advisory lock on path+".lock".
// Writers of the same file are serialized across processes; the lock file
// itself is left in place so concurrent lockers always agree on the inode.
func WithLock(path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrapf(err, "locking %s", path)
	}
	defer lock.Unlock()

	return fn()
}
