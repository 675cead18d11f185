package backup

import (
	"context"
	"log/slog"
	"time"

	"github.com/thoreinstein/timeto/internal/logging"
)

type options struct {
	clock     Clock
	logger    *slog.Logger
	reporter  Reporter
	metrics   *Metrics
	runLock   RunLock
	ioTimeout time.Duration
}

// Option configures the exporter, retention manager and scheduler.
type Option func(*options)

// WithClock sets the time source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger. Defaults to the logger carried by the
// context, then slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithReporter sets where absorbed failures go. Defaults to a LogReporter.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithMetrics records run outcomes to m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithRunLock makes the scheduler hold l for each whole run, so runs in
// different processes over the same location never overlap.
func WithRunLock(l RunLock) Option {
	return func(o *options) {
		o.runLock = l
	}
}

// WithIOTimeout bounds each provider and snapshot call.
func WithIOTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ioTimeout = d
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:     SystemClock,
		ioTimeout: DefaultIOTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) log(ctx context.Context) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return logging.FromContext(ctx)
}

func (o *options) report(ctx context.Context) Reporter {
	if o.reporter != nil {
		return o.reporter
	}
	return LogReporter{Logger: o.log(ctx)}
}

// withIO derives the context for one provider or snapshot call.
func (o *options) withIO(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.ioTimeout)
}
