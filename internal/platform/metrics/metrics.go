// Package metrics holds the Prometheus counters for export and import runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus counters and gauges for motion runs.
type Metrics struct {
	registry         *prometheus.Registry
	runsTotal        *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
	framesTotal      prometheus.Counter
	lookaheadsTotal  prometheus.Counter
	keyframesTotal   prometheus.Counter
	lastRunDuration  prometheus.Gauge
	lastRunTimestamp prometheus.Gauge
}

// Run kinds used as the "kind" label.
const (
	KindExport = "export"
	KindImport = "import"
)

// New creates and registers metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motionio_runs_total",
			Help: "Total number of completed runs",
		}, []string{"kind"}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motionio_failures_total",
			Help: "Total number of aborted runs",
		}, []string{"kind"}),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motionio_frames_total",
			Help: "Total number of motion records produced",
		}),
		lookaheadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motionio_lookahead_samples_total",
			Help: "Total number of scratch samples taken past the current frame",
		}),
		keyframesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motionio_keyframes_total",
			Help: "Total number of keyframes set by imports",
		}),
		lastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "motionio_last_run_duration_seconds",
			Help: "Wall-clock duration of the most recent run",
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "motionio_last_run_timestamp_seconds",
			Help: "Unix time at which the most recent run finished",
		}),
	}

	registry.MustRegister(
		m.runsTotal,
		m.failuresTotal,
		m.framesTotal,
		m.lookaheadsTotal,
		m.keyframesTotal,
		m.lastRunDuration,
		m.lastRunTimestamp,
	)

	return m
}

// ObserveExport records a finished export.
func (m *Metrics) ObserveExport(frames, lookaheads int, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(KindExport).Inc()
	m.framesTotal.Add(float64(frames))
	m.lookaheadsTotal.Add(float64(lookaheads))
	m.finish(elapsed)
}

// ObserveImport records a finished import.
func (m *Metrics) ObserveImport(keyframes int, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(KindImport).Inc()
	m.keyframesTotal.Add(float64(keyframes))
	m.finish(elapsed)
}

// ObserveFailure records an aborted run of the given kind.
func (m *Metrics) ObserveFailure(kind string, elapsed time.Duration) {
	m.failuresTotal.WithLabelValues(kind).Inc()
	m.finish(elapsed)
}

func (m *Metrics) finish(elapsed time.Duration) {
	m.lastRunDuration.Set(elapsed.Seconds())
	m.lastRunTimestamp.SetToCurrentTime()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics in the text exposition format,
// for pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
