package metrics

import (
	"time"

	"mercator-hq/courier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks relay calls.
//
// Metrics:
//   - courier_relay_requests_total: relay calls by dispatch path and outcome
//   - courier_relay_request_duration_seconds: relay call duration
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of relay calls",
			},
			[]string{"dispatch", "outcome"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of relay calls in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"dispatch"},
		),
	}

	registry.MustRegister(rm.requestsTotal, rm.requestDuration)

	return rm
}

// RecordRequest records one relay call.
func (rm *RequestMetrics) RecordRequest(dispatch, outcome string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(dispatch, outcome).Inc()
	rm.requestDuration.WithLabelValues(dispatch).Observe(duration.Seconds())
}
