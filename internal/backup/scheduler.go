package backup

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/thoreinstein/timeto/internal/errors"
)

// Scheduler runs at most one backup per calendar day.
type Scheduler struct {
	exporter  *Exporter
	retention *Retention
	opts      options

	// running admits one run at a time within the process; opts.runLock
	// extends that across processes.
	running *semaphore.Weighted
	state   atomic.Int32
}

// NewScheduler returns a Scheduler driving exp and ret.
func NewScheduler(exp *Exporter, ret *Retention, opts ...Option) *Scheduler {
	return &Scheduler{
		exporter:  exp,
		retention: ret,
		opts:      newOptions(opts),
		running:   semaphore.NewWeighted(1),
	}
}

// State returns where the current run is. It is StateIdle between runs.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) setState(st State) {
	s.state.Store(int32(st))
}

// DailyBackupIfNeeded writes a backup and prunes old ones unless a backup
// already exists for today. It never fails: every error is classified,
// sent to the Reporter and listed in the Result.
//
// Calls are serialized. A call made while another run is in progress waits
// under its own ctx, then checks again, so it normally finds today's backup
// and returns OutcomeUpToDate.
func (s *Scheduler) DailyBackupIfNeeded(ctx context.Context) Result {
	res := Result{RunID: uuid.NewString(), LastBackupDay: NoDay}
	logger := s.opts.log(ctx).With("run_id", res.RunID)

	if !s.running.TryAcquire(1) {
		res.Waited = true
		logger.Debug("waiting for running backup check")
		if err := s.running.Acquire(ctx, 1); err != nil {
			s.fail(ctx, &res, logger, errors.Mark(errors.Wrap(err, "waiting for running backup check"), ErrLock))
			res.Outcome = OutcomeFailed
			s.opts.metrics.observeRun(res.Outcome)
			return res
		}
	}
	defer s.running.Release(1)

	s.run(ctx, &res, logger)
	return res
}

// fail records err on res and reports it. A missing configuration is an
// expected state, so it is only logged.
func (s *Scheduler) fail(ctx context.Context, res *Result, logger *slog.Logger, err error) {
	kind := Classify(err)
	if kind == KindConfigMissing {
		logger.Debug("backup skipped", "reason", err)
		return
	}
	f := Failure{RunID: res.RunID, Kind: kind, Err: err}
	res.Failures = append(res.Failures, f)
	s.opts.metrics.observeFailure(kind)
	s.opts.report(ctx).Report(ctx, f)
}

// run performs one check-export-cleanup pass. The caller holds s.running.
func (s *Scheduler) run(ctx context.Context, res *Result, logger *slog.Logger) {
	fail := func(err error) { s.fail(ctx, res, logger, err) }

	defer func() {
		if r := recover(); r != nil {
			fail(errors.Newf("backup run panicked: %s", fmt.Sprint(r)))
			res.Outcome = OutcomeFailed
		}
		s.setState(StateIdle)
		s.opts.metrics.observeRun(res.Outcome)
		logger.Debug("backup check finished", "outcome", string(res.Outcome))
	}()

	s.setState(StateCheckingLastBackup)
	if s.opts.runLock != nil {
		unlock, err := s.opts.runLock.Lock(ctx)
		if err != nil {
			fail(errors.Mark(err, ErrLock))
			res.Outcome = OutcomeFailed
			return
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("releasing backup lock failed", "error", err)
			}
		}()
	}

	last, ok, err := s.retention.MostRecentDay(ctx)
	if err != nil {
		fail(err)
		res.Outcome = OutcomeFailed
		return
	}
	res.LastBackupDay, res.HasLastBackupDay = last, ok

	today := LocalDay(s.opts.clock.Now())
	if ok && last >= today {
		logger.Debug("backup already taken today", "day", last.String())
		res.Outcome = OutcomeUpToDate
		return
	}

	rec, err := s.exporter.newBackup(ctx, s.setState)
	if err != nil {
		fail(err)
		switch Classify(err) {
		case KindUserCancelled:
			res.Outcome = OutcomeCancelled
		case KindConfigMissing:
			res.Outcome = OutcomeNotConfigured
		default:
			res.Outcome = OutcomeFailed
		}
		return
	}
	res.Backup = &rec
	res.Outcome = OutcomeBackedUp

	s.setState(StateCleaningUp)
	report, err := s.retention.Cleanup(ctx)
	res.Cleanup = &report
	s.opts.metrics.observeCleanup(report)
	for _, df := range report.Failed {
		fail(df.Err)
	}
	if err != nil {
		fail(err)
	}

	logger.Info("daily backup complete",
		"name", rec.Name,
		"kept", len(report.Kept),
		"deleted", len(report.Deleted),
	)
}
