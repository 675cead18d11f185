package backup

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/paths"
)

// DefaultLockRetry is how often FileLock polls a lock held elsewhere.
const DefaultLockRetry = 100 * time.Millisecond

// RunLock serializes scheduler runs across processes. Lock blocks until
// the lock is held or ctx is done.
type RunLock interface {
	Lock(ctx context.Context) (unlock func() error, err error)
}

// FileLock is a RunLock backed by an advisory flock(2) on path. Every
// process that backs up the same location must use the same path.
type FileLock struct {
	path  string
	retry time.Duration
}

var _ RunLock = (*FileLock)(nil)

// NewFileLock returns a lock on path. The file and its directory are
// created on first use.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path, retry: DefaultLockRetry}
}

// Path returns the lock file path.
func (l *FileLock) Path() string { return l.path }

// Lock acquires the file lock, waiting while another run holds it.
func (l *FileLock) Lock(ctx context.Context) (func() error, error) {
	if err := paths.EnsureDir(filepath.Dir(l.path), paths.DefaultDirPerm); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "creating lock directory for %s", l.path), ErrLock)
	}

	fl := flock.New(l.path)
	ok, err := fl.TryLockContext(ctx, l.retry)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "locking %s", l.path), ErrLock)
	}
	if !ok {
		return nil, errors.Mark(errors.Newf("%s is held by another run", l.path), ErrLock)
	}
	return fl.Unlock, nil
}
