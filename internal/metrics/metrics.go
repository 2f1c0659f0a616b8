// Package metrics records crontab synchronization runs as Prometheus metrics.
//
// cronplan is a short-lived command, so metrics are not served over HTTP; they
// are written in the text exposition format for the node_exporter textfile
// collector when a textfile path is configured.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status labels for recorded runs.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// PrometheusMetrics holds the collectors for plan runs.
type PrometheusMetrics struct {
	registry    *prometheus.Registry
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	planJobs    *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
}

// New creates the collectors under namespace and registers them on a fresh registry.
func New(namespace string) *PrometheusMetrics {
	reg := prometheus.NewRegistry()

	m := &PrometheusMetrics{
		registry: reg,
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of plan runs",
			},
			[]string{"mode", "status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of plan runs, bootstrap commands included",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 30, 120},
			},
			[]string{"mode"},
		),
		planJobs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "plan_jobs",
				Help:      "Number of jobs rendered for a plan",
			},
			[]string{"plan"},
		),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful run per plan and mode",
			},
			[]string{"plan", "mode"},
		),
	}

	reg.MustRegister(
		m.runsTotal,
		m.runDuration,
		m.planJobs,
		m.lastSuccess,
	)

	return m
}

// RecordRun records one run of plan in mode.
func (m *PrometheusMetrics) RecordRun(plan, mode, status string, duration time.Duration) {
	m.runsTotal.WithLabelValues(mode, status).Inc()
	m.runDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if status == StatusSuccess {
		m.lastSuccess.WithLabelValues(plan, mode).SetToCurrentTime()
	}
}

// SetPlanJobs records how many jobs plan rendered.
func (m *PrometheusMetrics) SetPlanJobs(plan string, count int) {
	m.planJobs.WithLabelValues(plan).Set(float64(count))
}

// Gatherer exposes the registry, mainly for tests.
func (m *PrometheusMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
