// Package metrics records per-run conversion metrics on a private
// Prometheus registry and writes them in the node exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sharon"

// Recorder collects the metrics of one run. A nil *Recorder records
// nothing, so callers need not check whether metrics are enabled.
type Recorder struct {
	registry *prometheus.Registry

	files    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  prometheus.Counter
	run      prometheus.Gauge
}

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Source files processed, by dialect and result.",
		}, []string{"dialect", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent converting one source file.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"dialect"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_retries_total",
			Help:      "Identity collisions resolved by advancing the sequence number.",
		}),
		run: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
	}
	r.registry.MustRegister(r.files, r.duration, r.retries, r.run)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// FileDone records one converted or failed file.
func (r *Recorder) FileDone(dialect string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.files.WithLabelValues(dialect, result).Inc()
	r.duration.WithLabelValues(dialect).Observe(elapsed.Seconds())
}

// IdentityRetries adds n resolved identity collisions.
func (r *Recorder) IdentityRetries(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.retries.Add(float64(n))
}

// RunDone records the wall time of the run.
func (r *Recorder) RunDone(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.run.Set(elapsed.Seconds())
}

// WriteFile writes every metric to path in the textfile format.
func (r *Recorder) WriteFile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
