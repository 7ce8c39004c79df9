package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "proxy.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// HasField reports whether any error refers to the given field.
func (e ValidationError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProxy(&cfg.Proxy)...)
	errs = append(errs, validateAuth(&cfg.Auth)...)
	errs = append(errs, validatePlatform(&cfg.Platform)...)
	errs = append(errs, validateErrors(&cfg.Errors)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateProxy validates proxy configuration.
func validateProxy(cfg *ProxyConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: "listen address is required",
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}
	if cfg.MaxBodyBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_body_bytes",
			Message: "max body bytes must be non-negative",
		})
	}

	return errs
}

// validateAuth validates inbound authentication. A missing token is reported
// here so that startup fails instead of every request failing later.
func validateAuth(cfg *AuthConfig) []FieldError {
	if strings.TrimSpace(cfg.Token) == "" {
		return []FieldError{{
			Field:   "auth.token",
			Message: "auth token is required (set COURIER_AUTH_TOKEN)",
		}}
	}
	return nil
}

// validatePlatform validates the remote origins and transport settings.
func validatePlatform(cfg *PlatformConfig) []FieldError {
	var errs []FieldError

	for field, origin := range map[string]string{
		"platform.api_origin": cfg.APIOrigin,
		"platform.web_origin": cfg.WebOrigin,
	} {
		u, err := url.Parse(origin)
		switch {
		case origin == "":
			errs = append(errs, FieldError{Field: field, Message: "origin is required"})
		case err != nil:
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("invalid URL format: %v", err)})
		case u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, FieldError{Field: field, Message: "origin must use http or https"})
		case u.Path != "" && u.Path != "/":
			errs = append(errs, FieldError{Field: field, Message: "origin must not contain a path"})
		}
	}

	if !strings.HasPrefix(cfg.InternalPrefix, "/") {
		errs = append(errs, FieldError{
			Field:   "platform.internal_prefix",
			Message: "internal prefix must start with '/'",
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "platform.timeout",
			Message: "timeout must be positive",
		})
	}
	if cfg.MaxIdleConns < 0 || cfg.MaxIdleConnsPerHost < 0 {
		errs = append(errs, FieldError{
			Field:   "platform.max_idle_conns",
			Message: "connection pool sizes must be non-negative",
		})
	}

	return errs
}

// validateErrors validates error shaping configuration.
func validateErrors(cfg *ErrorsConfig) []FieldError {
	var errs []FieldError

	if cfg.URLMaxLength < 16 {
		errs = append(errs, FieldError{
			Field:   "errors.url_max_length",
			Message: "url max length must be at least 16",
		})
	}
	if cfg.RawBodyMaxLength < 0 {
		errs = append(errs, FieldError{
			Field:   "errors.raw_body_max_length",
			Message: "raw body max length must be non-negative",
		})
	}
	for i, m := range cfg.EmptyResult.Markers {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("errors.empty_result.markers[%d]", i),
				Message: "marker must not be empty",
			})
		}
	}
	for i, s := range cfg.EmptyResult.CrashSignatures {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("errors.empty_result.crash_signatures[%d]", i),
				Message: "crash signature must not be empty",
			})
		}
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	for i, p := range cfg.Logging.RedactPatterns {
		if _, err := regexp.Compile(p.Pattern); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("telemetry.logging.redact_patterns[%d].pattern", i),
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	if cfg.Metrics.IsEnabled() && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with '/' when metrics are enabled",
		})
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.endpoint",
			Message: "tracing endpoint is required when tracing is enabled",
		})
	}
	validSamplers := map[string]bool{"always": true, "never": true, "ratio": true}
	if !validSamplers[cfg.Tracing.Sampler] {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q: must be 'always', 'never', or 'ratio'", cfg.Tracing.Sampler),
		})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1.0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	if cfg.Health.IsEnabled() && !strings.HasPrefix(cfg.Health.LivenessPath, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.liveness_path",
			Message: "liveness path must start with '/'",
		})
	}

	return errs
}
