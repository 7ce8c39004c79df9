package config

import "time"

// Default values for configuration fields.
const (
	// Proxy defaults
	DefaultListenAddress   = "0.0.0.0:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576  // 1MB
	DefaultMaxBodyBytes    = 10485760 // 10MB

	// Platform defaults
	DefaultAPIOrigin           = "https://api.x.com"
	DefaultWebOrigin           = "https://x.com"
	DefaultInternalPrefix      = "/i/api/"
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 16
	DefaultIdleConnTimeout     = 90 * time.Second

	// Error shaping defaults
	DefaultURLMaxLength     = 200
	DefaultRawBodyMaxLength = 2000

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultPrometheusPath     = "/metrics"
	DefaultMetricsNamespace   = "courier"
	DefaultMetricsSubsystem   = "relay"
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "courier"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultLivenessPath       = "/health"
)

// DefaultCrashSignatures are the client error substrings treated as decoder
// crashes by the empty-result policy.
var DefaultCrashSignatures = []string{"undefined field", "access denied"}

// DefaultEmptyResultMarkers are the body tokens that mark a 200 response as
// a genuine error.
var DefaultEmptyResultMarkers = []string{"errors", "code", "suspended", "locked"}

// DefaultRequestDurationBuckets are tuned for one outbound platform call.
var DefaultRequestDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Proxy defaults
	if cfg.Proxy.ListenAddress == "" {
		cfg.Proxy.ListenAddress = DefaultListenAddress
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Proxy.WriteTimeout == 0 {
		cfg.Proxy.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Proxy.IdleTimeout == 0 {
		cfg.Proxy.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Proxy.MaxHeaderBytes == 0 {
		cfg.Proxy.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Proxy.MaxBodyBytes == 0 {
		cfg.Proxy.MaxBodyBytes = DefaultMaxBodyBytes
	}

	applyPlatformDefaults(&cfg.Platform)
	applyErrorsDefaults(&cfg.Errors)

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = append([]float64(nil), DefaultRequestDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultLivenessPath
	}
	if cfg.Telemetry.Tracing.SkipPaths == nil {
		cfg.Telemetry.Tracing.SkipPaths = []string{
			cfg.Telemetry.Health.LivenessPath,
			cfg.Telemetry.Metrics.Path,
		}
	}
}

func applyPlatformDefaults(p *PlatformConfig) {
	if p.APIOrigin == "" {
		p.APIOrigin = DefaultAPIOrigin
	}
	if p.WebOrigin == "" {
		p.WebOrigin = DefaultWebOrigin
	}
	if p.InternalPrefix == "" {
		p.InternalPrefix = DefaultInternalPrefix
	}
	if p.MaxIdleConns == 0 {
		p.MaxIdleConns = DefaultMaxIdleConns
	}
	if p.MaxIdleConnsPerHost == 0 {
		p.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if p.IdleConnTimeout == 0 {
		p.IdleConnTimeout = DefaultIdleConnTimeout
	}
}

func applyErrorsDefaults(e *ErrorsConfig) {
	if e.URLMaxLength == 0 {
		e.URLMaxLength = DefaultURLMaxLength
	}
	if e.RawBodyMaxLength == 0 {
		e.RawBodyMaxLength = DefaultRawBodyMaxLength
	}
	// nil means "use defaults"; an explicit empty list in YAML disables the check
	if e.EmptyResult.CrashSignatures == nil {
		e.EmptyResult.CrashSignatures = append([]string(nil), DefaultCrashSignatures...)
	}
	if e.EmptyResult.Markers == nil {
		e.EmptyResult.Markers = append([]string(nil), DefaultEmptyResultMarkers...)
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
