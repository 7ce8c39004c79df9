package secrets

import "context"

// Provider retrieves secrets from one backend.
type Provider interface {
	// GetSecret returns the value stored under name.
	GetSecret(ctx context.Context, name string) (string, error)

	// Name identifies the backend in logs (env, file).
	Name() string

	// Supports reports whether the backend can answer for name.
	Supports(name string) bool
}
