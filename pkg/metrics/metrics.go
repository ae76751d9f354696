// Package metrics records classification and export counters in a private
// Prometheus registry. Nothing is served over the network; the registry is
// dumped in text exposition format for a node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewRegistry creates a registry with every metric initialized
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initClassificationMetrics()
	r.initExportMetrics()
	return r
}

func (r *Registry) initClassificationMetrics() {
	r.CandidatesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "regnet_candidates_total",
			Help: "Candidate functions classified, by verdict",
		},
		[]string{"verdict"},
	)

	r.RetainedFunctions = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "regnet_retained_functions",
			Help: "Monotonic functions retained by the last run",
		},
	)

	r.ConfigSpaceSize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "regnet_config_space_size",
			Help: "Number of configs in the last run's space",
		},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "regnet_run_duration_seconds",
			Help:    "Enumerate-and-filter duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "regnet_runs_total",
			Help: "Pipeline runs, by status",
		},
		[]string{"status"},
	)
}

func (r *Registry) initExportMetrics() {
	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "regnet_exports_total",
			Help: "Export writes, by sink and status",
		},
		[]string{"sink", "status"},
	)

	r.ExportBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "regnet_export_bytes_total",
			Help: "Bytes handed to export sinks",
		},
		[]string{"sink"},
	)
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordRun records one completed enumerate-and-filter pass
func (r *Registry) RecordRun(spaceSize int, candidates uint64, retained int, duration time.Duration) {
	r.ConfigSpaceSize.Set(float64(spaceSize))
	r.RetainedFunctions.Set(float64(retained))
	r.CandidatesTotal.WithLabelValues(VerdictMonotonic).Add(float64(retained))
	r.CandidatesTotal.WithLabelValues(VerdictRejected).Add(float64(candidates - uint64(retained)))
	r.RunDuration.Observe(duration.Seconds())
	r.RunsTotal.WithLabelValues(StatusSuccess).Inc()
}

// RecordRunError records a run that failed before producing a result
func (r *Registry) RecordRunError() {
	r.RunsTotal.WithLabelValues(StatusError).Inc()
}

// RecordExport records one write to an export sink
func (r *Registry) RecordExport(sink string, bytes int64, err error) {
	if err != nil {
		r.ExportsTotal.WithLabelValues(sink, StatusError).Inc()
		return
	}
	r.ExportsTotal.WithLabelValues(sink, StatusSuccess).Inc()
	r.ExportBytesTotal.WithLabelValues(sink).Add(float64(bytes))
}

// WriteTextfile writes every metric to path in the text exposition format
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.GetPrometheusRegistry()); err != nil {
		return fmt.Errorf("metrics: write textfile %s: %w", path, err)
	}
	return nil
}
