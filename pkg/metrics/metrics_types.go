package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry holds the metrics of one run. Each command builds its own.
type Registry struct {
	// Classification metrics
	CandidatesTotal   *prometheus.CounterVec
	RetainedFunctions prometheus.Gauge
	ConfigSpaceSize   prometheus.Gauge
	RunDuration       prometheus.Histogram
	RunsTotal         *prometheus.CounterVec

	// Export metrics
	ExportsTotal     *prometheus.CounterVec
	ExportBytesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// Verdict label values
const (
	VerdictMonotonic = "monotonic"
	VerdictRejected  = "rejected"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
