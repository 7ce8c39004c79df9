// Package metrics provides Prometheus metrics for the relay.
//
// # Metrics
//
//   - courier_relay_requests_total{dispatch,outcome}
//   - courier_relay_request_duration_seconds{dispatch}
//   - courier_relay_upstream_errors_total{dispatch,status}
//   - courier_relay_empty_results_total{method}
//
// dispatch is "method", "raw" or "none" (rejected before dispatch).
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordRequest(metrics.DispatchMethod, metrics.OutcomeSuccess, time.Since(start))
//	mux.Handle("/metrics", collector.Handler())
//
// A nil *Collector records nothing, so callers need no enabled checks.
package metrics
