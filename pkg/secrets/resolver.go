package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var secretRefRegex = regexp.MustCompile(`\$\{secret:([^}]+)\}`)

// Resolver looks secrets up across providers in priority order.
type Resolver struct {
	providers []Provider
}

// NewResolver creates a Resolver. The first provider that supports a name
// and returns a value wins.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

// GetSecret returns the value for name from the first provider that has it.
func (r *Resolver) GetSecret(ctx context.Context, name string) (string, error) {
	var lastErr error
	for _, provider := range r.providers {
		if !provider.Supports(name) {
			continue
		}

		value, err := provider.GetSecret(ctx, name)
		if err != nil {
			lastErr = err
			slog.DebugContext(ctx, "secret provider failed",
				"provider", provider.Name(),
				"name", redactSecretName(name),
				"error", err,
			)
			continue
		}

		slog.DebugContext(ctx, "secret resolved",
			"provider", provider.Name(),
			"name", redactSecretName(name),
		)
		return value, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to get secret %q: %w", name, lastErr)
	}
	return "", fmt.Errorf("secret not found: %q (no provider supports this secret)", name)
}

// Resolve replaces every ${secret:name} in input. Input without references
// is returned unchanged. Any unresolved reference fails the whole call.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	var errs []string

	output := secretRefRegex.ReplaceAllStringFunc(input, func(match string) string {
		name := strings.TrimSpace(secretRefRegex.FindStringSubmatch(match)[1])
		value, err := r.GetSecret(ctx, name)
		if err != nil {
			errs = append(errs, err.Error())
			return match
		}
		return value
	})

	if len(errs) > 0 {
		return "", fmt.Errorf("failed to resolve secret references: %s", strings.Join(errs, "; "))
	}
	return output, nil
}

// HasReference reports whether s contains a ${secret:...} reference.
func HasReference(s string) bool {
	return secretRefRegex.MatchString(s)
}

// redactSecretName keeps the first and last two characters of name.
func redactSecretName(name string) string {
	if len(name) <= 4 {
		return "***"
	}
	return name[:2] + "..." + name[len(name)-2:]
}
