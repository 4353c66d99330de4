// Package jobmetrics instruments the event redelivery queue.
package jobmetrics

import (
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for shop_jobs_total.
const (
	OutcomeOK      = "ok"
	OutcomeRetry   = "retry"
	OutcomeDropped = "dropped"
)

// Metrics holds the job collectors. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	queued   *prometheus.CounterVec
}

// NewMetrics registers the collectors on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_jobs_total",
			Help: "Job executions by task type and outcome.",
		}, []string{"job", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_job_duration_seconds",
			Help:    "Job execution time by task type.",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 10},
		}, []string{"job"}),
		queued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_events_queued_total",
			Help: "Events queued for redelivery after the broker rejected them.",
		}, []string{"type"}),
	}
	registerer.MustRegister(m.runs, m.duration, m.queued)
	return m
}

// Run measures a single job execution.
type Run struct {
	metrics *Metrics
	job     string
	started time.Time
}

// Track starts measuring an execution of job.
func (m *Metrics) Track(job string) Run {
	return Run{metrics: m, job: job, started: time.Now()}
}

// End records the outcome of err and returns it unchanged. asynq.SkipRetry
// counts as dropped, any other error as retry.
func (r Run) End(err error) error {
	if r.metrics == nil {
		return err
	}
	r.metrics.runs.WithLabelValues(r.job, Outcome(err)).Inc()
	r.metrics.duration.WithLabelValues(r.job).Observe(time.Since(r.started).Seconds())
	return err
}

// Outcome classifies a job result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, asynq.SkipRetry):
		return OutcomeDropped
	default:
		return OutcomeRetry
	}
}

// AddQueued counts an event handed to the redelivery queue.
func (m *Metrics) AddQueued(eventType string) {
	if m == nil {
		return
	}
	m.queued.WithLabelValues(eventType).Inc()
}
