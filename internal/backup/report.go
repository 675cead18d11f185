package backup

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/timeto/internal/errors"
)

// FailureKind classifies errors crossing the scheduler boundary.
type FailureKind string

const (
	KindConfigMissing   FailureKind = "config_missing"
	KindUserCancelled   FailureKind = "user_cancelled"
	KindWriteFailure    FailureKind = "write_failure"
	KindListFailure     FailureKind = "list_failure"
	KindDeleteFailure   FailureKind = "delete_failure"
	KindDecodeFailure   FailureKind = "decode_failure"
	KindSnapshotFailure FailureKind = "snapshot_failure"
	KindLocationFailure FailureKind = "location_failure"
	KindLockFailure     FailureKind = "lock_failure"
	KindUnknown         FailureKind = "unknown"
)

// Classify maps err to the kind of the first sentinel it matches.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUserCancelled):
		return KindUserCancelled
	case errors.Is(err, ErrConfigMissing):
		return KindConfigMissing
	case errors.Is(err, ErrWrite):
		return KindWriteFailure
	case errors.Is(err, ErrList):
		return KindListFailure
	case errors.Is(err, ErrDelete):
		return KindDeleteFailure
	case errors.Is(err, ErrDecode):
		return KindDecodeFailure
	case errors.Is(err, ErrSnapshot):
		return KindSnapshotFailure
	case errors.Is(err, ErrLocation):
		return KindLocationFailure
	case errors.Is(err, ErrLock):
		return KindLockFailure
	default:
		return KindUnknown
	}
}

// Failure is one classified error reported during a run.
type Failure struct {
	RunID string
	Kind  FailureKind
	Err   error
}

func (f Failure) Error() string {
	return string(f.Kind) + ": " + f.Err.Error()
}

func (f Failure) Unwrap() error { return f.Err }

// Reporter is the diagnostics channel for failures the scheduler absorbs.
type Reporter interface {
	Report(ctx context.Context, f Failure)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, f Failure)

// Report calls fn.
func (fn ReporterFunc) Report(ctx context.Context, f Failure) { fn(ctx, f) }

// LogReporter writes failures to a slog.Logger. A dismissed prompt is
// logged at Info since it is an expected user choice.
type LogReporter struct {
	Logger *slog.Logger
}

// Report logs f.
func (r LogReporter) Report(ctx context.Context, f Failure) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := slog.LevelError
	if f.Kind == KindUserCancelled {
		level = slog.LevelInfo
	}
	logger.Log(ctx, level, "automatic backup failed",
		"run_id", f.RunID,
		"kind", string(f.Kind),
		"error", f.Err,
	)
}

// MultiReporter fans a failure out to several reporters.
type MultiReporter []Reporter

// Report forwards f to every reporter.
func (m MultiReporter) Report(ctx context.Context, f Failure) {
	for _, r := range m {
		r.Report(ctx, f)
	}
}
