package backup

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the backup subsystem.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs           *prometheus.CounterVec
	failures       *prometheus.CounterVec
	deleted        prometheus.Counter
	retained       prometheus.Gauge
	lastSuccess    prometheus.Gauge
	exportDuration prometheus.Histogram
}

// NewMetrics registers the backup collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeto_backup_runs_total",
				Help: "Daily backup checks by outcome",
			},
			[]string{"outcome"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeto_backup_failures_total",
				Help: "Failures reported by the backup scheduler",
			},
			[]string{"kind"},
		),
		deleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "timeto_backup_files_deleted_total",
			Help: "Backup files removed by retention",
		}),
		retained: factory.NewGauge(prometheus.GaugeOpts{
			Name: "timeto_backup_files_retained",
			Help: "Backup files kept after the last cleanup pass",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "timeto_backup_last_success_timestamp_seconds",
			Help: "Unix time of the last backup written",
		}),
		exportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "timeto_backup_export_duration_seconds",
			Help:    "Time spent taking and writing a snapshot",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeRun(o Outcome) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) observeFailure(k FailureKind) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(string(k)).Inc()
}

func (m *Metrics) observeExport(at time.Time, took time.Duration) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(at.Unix()))
	m.exportDuration.Observe(took.Seconds())
}

func (m *Metrics) observeCleanup(r CleanupReport) {
	if m == nil {
		return
	}
	m.deleted.Add(float64(len(r.Deleted)))
	m.retained.Set(float64(len(r.Kept) + len(r.Failed)))
}

// RunsCounter returns the run counter for o.
func (m *Metrics) RunsCounter(o Outcome) prometheus.Counter {
	return m.runs.WithLabelValues(string(o))
}

// FailuresCounter returns the failure counter for k.
func (m *Metrics) FailuresCounter(k FailureKind) prometheus.Counter {
	return m.failures.WithLabelValues(string(k))
}

// DeletedCounter returns the counter of files removed by retention.
func (m *Metrics) DeletedCounter() prometheus.Counter { return m.deleted }

// RetainedGauge returns the gauge of files kept by the last cleanup.
func (m *Metrics) RetainedGauge() prometheus.Gauge { return m.retained }
