// Package metrics records generation run statistics and writes them in the
// Prometheus text format for a node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "talosgen"

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Recorder collects run metrics in a private registry. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	nodes       *prometheus.GaugeVec
	cleanups    prometheus.Counter
	runSeconds  prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_invocations_total",
			Help:      "Generator invocations by artifact kind and result.",
		}, []string{"kind", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generator_invocation_duration_seconds",
			Help:      "Wall time of generator invocations.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"kind"}),
		nodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Nodes processed in the last run by effective role and result.",
		}, []string{"role", "result"}),
		cleanups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_warnings_total",
			Help:      "Temporary override files that could not be removed.",
		}),
		runSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last fully successful run.",
		}),
	}

	r.registry.MustRegister(r.invocations, r.duration, r.nodes, r.cleanups, r.runSeconds, r.lastSuccess)
	return r
}

// ObserveInvocation records one generator call.
func (r *Recorder) ObserveInvocation(kind, result string, d time.Duration) {
	if r == nil {
		return
	}
	r.invocations.WithLabelValues(kind, result).Inc()
	if result != ResultSkipped {
		r.duration.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// ObserveNode records the outcome of one node.
func (r *Recorder) ObserveNode(role, result string) {
	if r == nil {
		return
	}
	r.nodes.WithLabelValues(role, result).Inc()
}

// ObserveCleanupWarning records a failed temp file removal.
func (r *Recorder) ObserveCleanupWarning() {
	if r == nil {
		return
	}
	r.cleanups.Inc()
}

// ObserveRun records the run duration and, on success, its completion time.
func (r *Recorder) ObserveRun(d time.Duration, succeeded bool, now time.Time) {
	if r == nil {
		return
	}
	r.runSeconds.Set(d.Seconds())
	if succeeded {
		r.lastSuccess.Set(float64(now.Unix()))
	}
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes the metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
