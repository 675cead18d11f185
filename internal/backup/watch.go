package backup

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thoreinstein/timeto/internal/errors"
)

// DefaultSchedule checks for a missing daily backup every hour. The
// scheduler itself decides whether a check writes anything.
const DefaultSchedule = "@every 1h"

// Runner is the part of Scheduler the Watcher drives.
type Runner interface {
	DailyBackupIfNeeded(ctx context.Context) Result
}

// Watcher triggers a Runner on a cron schedule for long-lived processes.
type Watcher struct {
	runner   Runner
	schedule string
	onResult func(Result)

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
	opts    options
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithSchedule sets the cron expression. Standard five-field specs and
// descriptors such as "@daily" or "@every 30m" are accepted.
func WithSchedule(spec string) WatchOption {
	return func(w *Watcher) {
		if spec != "" {
			w.schedule = spec
		}
	}
}

// WithResultHandler is called after every triggered run.
func WithResultHandler(fn func(Result)) WatchOption {
	return func(w *Watcher) {
		w.onResult = fn
	}
}

// WithWatchOptions applies shared options such as WithLogger.
func WithWatchOptions(opts ...Option) WatchOption {
	return func(w *Watcher) {
		for _, opt := range opts {
			opt(&w.opts)
		}
	}
}

// NewWatcher returns a stopped Watcher for r.
func NewWatcher(r Runner, opts ...WatchOption) *Watcher {
	w := &Watcher{
		runner:   r,
		schedule: DefaultSchedule,
		opts:     newOptions(nil),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Schedule returns the cron expression in use.
func (w *Watcher) Schedule() string { return w.schedule }

// Start runs one check immediately and then on every schedule tick until
// ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return errors.New("watcher already running")
	}

	if _, err := cron.ParseStandard(w.schedule); err != nil {
		return errors.Wrapf(err, "invalid backup schedule %q", w.schedule)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(w.schedule, func() { w.trigger(ctx) }); err != nil {
		return errors.Wrap(err, "scheduling backup check")
	}

	done := make(chan struct{})
	w.cron = c
	w.done = done
	w.running = true
	c.Start()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.trigger(ctx)
	}()

	// Stops the watcher with ctx; exits once Stop has run either way.
	go func() {
		select {
		case <-ctx.Done():
			w.Stop()
		case <-done:
		}
	}()

	w.opts.log(ctx).Info("backup watcher started", "schedule", w.schedule)
	return nil
}

func (w *Watcher) trigger(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	res := w.runner.DailyBackupIfNeeded(ctx)
	if w.onResult != nil {
		w.onResult(res)
	}
}

// Stop halts the schedule and waits for in-flight checks to return.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	close(w.done)
	<-w.cron.Stop().Done()
	w.wg.Wait()
	w.running = false
	w.opts.log(context.Background()).Info("backup watcher stopped")
}

// IsRunning reports whether the schedule is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// NextRun returns the next scheduled check, or nil when stopped.
func (w *Watcher) NextRun() *time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
