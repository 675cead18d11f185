package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thoreinstein/timeto/cmd/timeto/commands/flags"
	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/cli/prompt"
	"github.com/thoreinstein/timeto/internal/config"
	"github.com/thoreinstein/timeto/internal/logging"
	"github.com/thoreinstein/timeto/internal/snapshot"
	"github.com/thoreinstein/timeto/internal/storage"
)

// env holds the collaborators every backup command builds on.
type env struct {
	cfg       *config.Config
	locations *backup.FileLocationStore
	provider  backup.Provider
	registry  *prometheus.Registry
	metrics   *backup.Metrics
	opts      []backup.Option

	storeOnce sync.Once
	store     *snapshot.Store
	storeErr  error
}

func newEnv(ctx context.Context) *env {
	cfg := flags.GetConfig()
	reg := prometheus.NewRegistry()
	metrics := backup.NewMetrics(reg)

	return &env{
		cfg:       cfg,
		locations: backup.NewFileLocationStore(cfg.StateFile),
		provider:  storage.NewFS(),
		registry:  reg,
		metrics:   metrics,
		opts: []backup.Option{
			backup.WithLogger(logging.FromContext(ctx)),
			backup.WithIOTimeout(cfg.Backup.IOTimeout),
			backup.WithMetrics(metrics),
			backup.WithRunLock(backup.NewFileLock(lockPath(cfg))),
		},
	}
}

// lockPath sits next to the state file, so every process sharing a
// backup location also shares the lock.
func lockPath(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.StateFile), lockFileName)
}

const lockFileName = "backup.lock"

// snapshots opens the database on first use so commands that only list or
// prune never touch it.
func (e *env) snapshots() backup.Snapshotter {
	return backup.SnapshotFunc(func(ctx context.Context) ([]byte, error) {
		e.storeOnce.Do(func() {
			e.store, e.storeErr = snapshot.Open(ctx, e.cfg.Database)
		})
		if e.storeErr != nil {
			return nil, e.storeErr
		}
		return e.store.Snapshot(ctx)
	})
}

func (e *env) retention() *backup.Retention {
	return backup.NewRetention(e.provider, e.locations, e.opts...)
}

func (e *env) exporter(p backup.Prompter) *backup.Exporter {
	return backup.NewExporter(e.provider, e.locations, p, e.snapshots(), e.opts...)
}

func (e *env) scheduler(p backup.Prompter) *backup.Scheduler {
	return backup.NewScheduler(e.exporter(p), e.retention(), e.opts...)
}

func (e *env) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// newPrompter returns nil when prompting is disabled. Reading from the real
// stdin picks the terminal prompter.
func newPrompter(in io.Reader, out io.Writer, enabled bool) backup.Prompter {
	if !enabled {
		return nil
	}
	if in == os.Stdin {
		return prompt.NewLocationPrompter()
	}
	return prompt.NewLocationPrompterWithIO(in, out)
}
