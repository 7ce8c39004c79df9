package secrets

import (
	"context"
	"testing"
)

func TestEnvProvider_GetSecret(t *testing.T) {
	t.Setenv("COURIER_SECRET_RELAY_TOKEN", "env-value")

	provider := NewEnvProvider("")
	if provider.Prefix != DefaultEnvPrefix {
		t.Fatalf("expected default prefix, got %q", provider.Prefix)
	}

	value, err := provider.GetSecret(context.Background(), "relay-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "env-value" {
		t.Errorf("expected 'env-value', got %q", value)
	}
}

func TestEnvProvider_CustomPrefix(t *testing.T) {
	t.Setenv("APP_DB_PASSWORD", "hunter2")

	value, err := NewEnvProvider("APP_").GetSecret(context.Background(), "db-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "hunter2" {
		t.Errorf("expected 'hunter2', got %q", value)
	}
}

func TestEnvProvider_NotFound(t *testing.T) {
	t.Setenv("COURIER_SECRET_EMPTY", "")

	provider := NewEnvProvider("")
	for _, name := range []string{"missing-secret", "empty"} {
		if _, err := provider.GetSecret(context.Background(), name); err == nil {
			t.Errorf("expected error for %q", name)
		}
	}
}
