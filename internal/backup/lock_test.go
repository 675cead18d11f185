package backup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/timeto/internal/errors"
)

func TestFileLock_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "backup.lock")
	lock := NewFileLock(path)
	assert.Equal(t, path, lock.Path())

	unlock, err := lock.Lock(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)
	require.NoError(t, unlock())
}

func TestFileLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.lock")
	first := NewFileLock(path)
	second := NewFileLock(path)
	second.retry = 5 * time.Millisecond

	unlock, err := first.Lock(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	_, err = second.Lock(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLock))
	assert.Equal(t, KindLockFailure, Classify(err))

	acquired := make(chan error, 1)
	go func() {
		u, err := second.Lock(context.Background())
		if err == nil {
			err = u()
		}
		acquired <- err
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first was held")
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, unlock())
	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("second lock not acquired after release")
	}
}
