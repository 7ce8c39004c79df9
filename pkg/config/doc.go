// Package config provides configuration management for Courier.
//
// Configuration is loaded once at startup from an optional YAML file, then
// environment variables, and is never mutated afterwards. The resulting
// *Config is passed explicitly into the server and its handlers; there is
// no package-level global.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml", true)
//
// With optional set, a missing file yields defaults plus environment, which
// is the usual shape on hosting platforms that only provide PORT and a
// secret.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention COURIER_SECTION_FIELD:
//
//   - COURIER_AUTH_TOKEN sets auth.token
//   - COURIER_AUTH_SECRETS_DIR sets auth.secrets_dir
//   - COURIER_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - COURIER_PLATFORM_WEB_ORIGIN overrides platform.web_origin
//   - COURIER_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// PORT, when set, replaces the port of proxy.listen_address.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// A missing auth token is a validation error: the relay refuses to start
// rather than answer every call with 500.
//
// # Example Configuration
//
//	proxy:
//	  listen_address: "0.0.0.0:8080"
//	platform:
//	  api_origin: "https://api.x.com"
//	  web_origin: "https://x.com"
//	errors:
//	  url_max_length: 200
//	  empty_result:
//	    enabled: true
//	    markers: ["errors", "code", "suspended", "locked"]
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
