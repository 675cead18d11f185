package storage

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/logging"
)

func TestFS_DailyBackupEndToEnd(t *testing.T) {
	ctx := context.Background()
	loc := backup.Location(t.TempDir())
	folder := backup.FolderPath(loc)
	require.NoError(t, os.MkdirAll(folder, 0o700))

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i := range 12 {
		name := backup.EncodeName(start.AddDate(0, 0, i))
		require.NoError(t, os.WriteFile(filepath.Join(folder, name), []byte("{}"), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(folder, "README"), []byte("keep"), 0o600))

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	opts := []backup.Option{
		backup.WithClock(backup.ClockFunc(func() time.Time { return now })),
		backup.WithLogger(logging.ForTest(t)),
	}
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	locs := backup.NewFileLocationStore(statePath)

	prompted := 0
	prompter := backup.PrompterFunc(func(context.Context, string, string) (backup.Location, error) {
		prompted++
		return loc, nil
	})
	snap := backup.SnapshotFunc(func(context.Context) ([]byte, error) { return []byte(`{"tables":{}}`), nil })

	fs := NewFS()
	sched := backup.NewScheduler(
		backup.NewExporter(fs, locs, prompter, snap, opts...),
		backup.NewRetention(fs, locs, opts...),
		opts...,
	)

	res := sched.DailyBackupIfNeeded(ctx)
	require.Equal(t, backup.OutcomeBackedUp, res.Outcome, "failures: %v", res.Failures)
	assert.Equal(t, 1, prompted)
	assert.Empty(t, res.Failures)

	items, err := os.ReadDir(folder)
	require.NoError(t, err)
	var names []string
	for _, it := range items {
		names = append(names, it.Name())
	}
	assert.Len(t, names, backup.MaxRetained+1)
	assert.Contains(t, names, "README")
	assert.Contains(t, names, backup.EncodeName(now))
	assert.False(t, slices.Contains(names, backup.EncodeName(start)))
	assert.False(t, slices.Contains(names, backup.EncodeName(start.AddDate(0, 0, 1))))
	assert.False(t, slices.Contains(names, backup.EncodeName(start.AddDate(0, 0, 2))))

	res = sched.DailyBackupIfNeeded(ctx)
	assert.Equal(t, backup.OutcomeUpToDate, res.Outcome)
	assert.Equal(t, 1, prompted)
}

func TestFS_SchedulersSharingLocationWriteOnce(t *testing.T) {
	loc := backup.Location(t.TempDir())
	stateDir := t.TempDir()
	statePath := filepath.Join(stateDir, "state.yaml")
	require.NoError(t, backup.NewFileLocationStore(statePath).Set(context.Background(), loc))

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	slowSnapshot := backup.SnapshotFunc(func(ctx context.Context) ([]byte, error) {
		select {
		case <-time.After(200 * time.Millisecond):
			return []byte("{}"), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	// Each scheduler stands in for a separate process: its own store,
	// provider, in-process guard and lock handle.
	newScheduler := func() *backup.Scheduler {
		opts := []backup.Option{
			backup.WithClock(backup.ClockFunc(func() time.Time { return now })),
			backup.WithLogger(logging.ForTest(t)),
			backup.WithRunLock(backup.NewFileLock(filepath.Join(stateDir, "backup.lock"))),
		}
		locs := backup.NewFileLocationStore(statePath)
		fs := NewFS()
		return backup.NewScheduler(
			backup.NewExporter(fs, locs, nil, slowSnapshot, opts...),
			backup.NewRetention(fs, locs, opts...),
			opts...,
		)
	}
	a, b := newScheduler(), newScheduler()

	results := make(chan backup.Result, 2)
	for _, s := range []*backup.Scheduler{a, b} {
		go func() { results <- s.DailyBackupIfNeeded(context.Background()) }()
	}

	var outcomes []backup.Outcome
	for range 2 {
		res := <-results
		assert.Empty(t, res.Failures)
		outcomes = append(outcomes, res.Outcome)
	}
	assert.ElementsMatch(t, []backup.Outcome{backup.OutcomeBackedUp, backup.OutcomeUpToDate}, outcomes)

	items, err := os.ReadDir(backup.FolderPath(loc))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
