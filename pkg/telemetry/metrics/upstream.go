package metrics

import (
	"strconv"

	"mercator-hq/courier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks how the platform answered.
//
// Metrics:
//   - courier_relay_upstream_errors_total: platform failures by status
//   - courier_relay_empty_results_total: decode failures reclassified as empty
type UpstreamMetrics struct {
	errors       *prometheus.CounterVec
	emptyResults *prometheus.CounterVec
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_errors_total",
				Help:      "Total number of failures reported by the platform",
			},
			[]string{"dispatch", "status"},
		),

		emptyResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "empty_results_total",
				Help:      "Total number of decode failures answered with an empty result",
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(um.errors, um.emptyResults)

	return um
}

// RecordError records one platform failure.
func (um *UpstreamMetrics) RecordError(dispatch, status string) {
	um.errors.WithLabelValues(dispatch, status).Inc()
}

// RecordEmptyResult records one reclassified decode failure.
func (um *UpstreamMetrics) RecordEmptyResult(method string) {
	um.emptyResults.WithLabelValues(method).Inc()
}

func statusLabel(status int) string {
	if status <= 0 {
		return "unknown"
	}
	return strconv.Itoa(status)
}
