package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconcileMetrics records sweep outcomes and scheduled-job health.
type ReconcileMetrics struct {
	sweepDuration *prometheus.HistogramVec
	jobSuccess    *prometheus.CounterVec
	jobFailure    *prometheus.CounterVec

	attemptsReviewed prometheus.Counter
	syncErrors       prometheus.Counter
	forcedExpired    prometheus.Counter
}

// NewReconcileMetrics registers the reconciliation metrics on the provided registerer.
func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of scheduled jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful scheduled job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed scheduled job executions.",
	}, []string{"job"})
	reviewed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_attempts_reviewed_total",
		Help: "Payment attempts examined by sweep runs.",
	})
	syncErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_sync_errors_total",
		Help: "Per-attempt reconciliation failures.",
	})
	forced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_forced_expirations_total",
		Help: "Attempts presumptively expired without a provider call.",
	})
	reg.MustRegister(duration, success, failure, reviewed, syncErrors, forced)
	return &ReconcileMetrics{
		sweepDuration:    duration,
		jobSuccess:       success,
		jobFailure:       failure,
		attemptsReviewed: reviewed,
		syncErrors:       syncErrors,
		forcedExpired:    forced,
	}
}

// ObserveDuration records the duration for the named job.
func (m *ReconcileMetrics) ObserveDuration(job string, duration time.Duration) {
	if m == nil || m.sweepDuration == nil {
		return
	}
	m.sweepDuration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (m *ReconcileMetrics) IncSuccess(job string) {
	if m == nil || m.jobSuccess == nil {
		return
	}
	m.jobSuccess.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (m *ReconcileMetrics) IncFailure(job string) {
	if m == nil || m.jobFailure == nil {
		return
	}
	m.jobFailure.WithLabelValues(normalizeLabel(job)).Inc()
}

// ObserveSweep records the aggregate counts of one sweep run.
func (m *ReconcileMetrics) ObserveSweep(reviewed, errored, forcedExpired int) {
	if m == nil || m.attemptsReviewed == nil {
		return
	}
	m.attemptsReviewed.Add(float64(reviewed))
	m.syncErrors.Add(float64(errored))
	m.forcedExpired.Add(float64(forcedExpired))
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
