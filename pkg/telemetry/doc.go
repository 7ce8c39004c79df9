// Package telemetry groups the relay's observability packages.
//
//   - logging: slog handler with request context fields and credential redaction
//   - metrics: Prometheus counters and histograms for relay calls
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//
// Each package accepts its section of config.TelemetryConfig. Metrics and
// tracing values may be nil, in which case they record nothing.
package telemetry
