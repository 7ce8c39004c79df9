package config

import "time"

// Config is the root configuration structure for Courier.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	// Proxy contains HTTP server configuration including listen address,
	// timeouts, and request size limits.
	Proxy ProxyConfig `yaml:"proxy"`

	// Auth contains the bearer token inbound callers must present.
	Auth AuthConfig `yaml:"auth"`

	// Platform contains the remote platform origins and outbound transport
	// settings.
	Platform PlatformConfig `yaml:"platform"`

	// Errors controls how remote failures are shaped before they are
	// returned to callers.
	Errors ErrorsConfig `yaml:"errors"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig contains configuration for the inbound HTTP server.
type ProxyConfig struct {
	// ListenAddress is the address and port for the relay to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// The hosting environment's PORT variable replaces the port.
	// Default: "0.0.0.0:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It bounds the whole relay round trip, so it is generous.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes is the largest request envelope accepted.
	// Default: 10485760 (10MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// AuthConfig contains inbound authentication settings.
type AuthConfig struct {
	// Token is the shared bearer token callers must send in the
	// Authorization header. It should be supplied through COURIER_AUTH_TOKEN
	// rather than written to a file. An empty token is a fatal
	// misconfiguration for "courier run".
	//
	// The token may be a ${secret:name} reference, resolved at startup from
	// COURIER_SECRET_<NAME> or from a file in SecretsDir.
	Token string `yaml:"token"`

	// SecretsDir is a directory of secret files (one secret per file).
	// Optional.
	SecretsDir string `yaml:"secrets_dir"`
}

// PlatformConfig describes the remote platform and the outbound transport.
type PlatformConfig struct {
	// APIOrigin is the REST API origin used for every path outside the
	// internal API prefix.
	// Default: "https://api.x.com"
	APIOrigin string `yaml:"api_origin"`

	// WebOrigin is the web origin that serves the internal API surface.
	// Default: "https://x.com"
	WebOrigin string `yaml:"web_origin"`

	// InternalPrefix is the path prefix that identifies internal API calls.
	// Default: "/i/api/"
	InternalPrefix string `yaml:"internal_prefix"`

	// Timeout bounds a single outbound call. Zero leaves it to the transport.
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the outbound pool size across all hosts.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the outbound pool size per host.
	// Default: 16
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long an idle outbound connection is kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// ErrorsConfig controls remote error shaping.
type ErrorsConfig struct {
	// URLMaxLength caps the length of request URLs surfaced in error
	// details. Longer URLs lose their query string.
	// Default: 200
	URLMaxLength int `yaml:"url_max_length"`

	// RawBodyMaxLength caps raw response text kept for diagnostics.
	// Default: 2000
	RawBodyMaxLength int `yaml:"raw_body_max_length"`

	// EmptyResult configures the decode-crash reclassification policy.
	EmptyResult EmptyResultConfig `yaml:"empty_result"`
}

// EmptyResultConfig configures when a client decode failure on a clean
// HTTP 200 response is answered with an empty result instead of an error.
type EmptyResultConfig struct {
	// Enabled turns the reclassification on.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// CrashSignatures are substrings of client error messages treated as
	// decoder crashes, in addition to the client's typed decode errors.
	// Default: ["undefined field", "access denied"]
	CrashSignatures []string `yaml:"crash_signatures"`

	// Markers are JSON tokens whose presence in the response body means the
	// response really is an error.
	// Default: ["errors", "code", "suspended", "locked"]
	Markers []string `yaml:"markers"`
}

// IsEnabled reports whether the empty-result policy is active.
func (c EmptyResultConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// Redact enables credential redaction in logs (bearer tokens, session
	// cookies, CSRF values).
	// Default: true
	Redact *bool `yaml:"redact"`

	// RedactPatterns contains additional redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactEnabled reports whether log redaction is active.
func (c LoggingConfig) RedactEnabled() bool {
	return c.Redact == nil || *c.Redact
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "courier"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "relay"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for relay duration (seconds).
	// Default: [0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// IsEnabled reports whether metrics are collected and served.
func (c MetricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// SkipPaths are inbound paths whose server spans are never sampled
	// unless the caller's trace context says otherwise.
	// Default: the liveness and metrics paths
	SkipPaths []string `yaml:"skip_paths"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "courier"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether the liveness endpoint is served.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`
}

// IsEnabled reports whether the liveness endpoint is served.
func (c HealthConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
