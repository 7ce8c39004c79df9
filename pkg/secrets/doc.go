// Package secrets resolves ${secret:name} references in configuration
// values.
//
// The relay's auth token can be written to config.yaml as a reference
// instead of a literal:
//
//	auth:
//	  token: ${secret:relay-token}
//	  secrets_dir: /run/secrets
//
// A Resolver tries its providers in order. EnvProvider reads
// COURIER_SECRET_RELAY_TOKEN; FileProvider reads /run/secrets/relay-token,
// the layout used by Docker and Kubernetes secret mounts.
//
// Secrets are resolved once at startup. Values are never logged.
package secrets
