package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix namespaces secrets read from the environment.
const DefaultEnvPrefix = "COURIER_SECRET_"

// EnvProvider loads secrets from environment variables.
//
// "relay-token" is read from COURIER_SECRET_RELAY_TOKEN with the default
// prefix.
type EnvProvider struct {
	Prefix string
}

// NewEnvProvider creates an environment provider. An empty prefix means
// DefaultEnvPrefix.
func NewEnvProvider(prefix string) *EnvProvider {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &EnvProvider{Prefix: prefix}
}

// GetSecret reads the variable for name. Unset and empty are both missing.
func (p *EnvProvider) GetSecret(ctx context.Context, name string) (string, error) {
	envVar := p.envVar(name)
	value := os.Getenv(envVar)
	if value == "" {
		return "", fmt.Errorf("secret %q not found in environment (env var: %s)", name, envVar)
	}
	return value, nil
}

// Name returns "env".
func (p *EnvProvider) Name() string {
	return "env"
}

// Supports always returns true so the environment acts as a fallback.
func (p *EnvProvider) Supports(name string) bool {
	return true
}

// envVar maps "relay-token" to "<prefix>RELAY_TOKEN".
func (p *EnvProvider) envVar(name string) string {
	return p.Prefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
