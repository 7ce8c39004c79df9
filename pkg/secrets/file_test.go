package secrets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSecret(t *testing.T, dir, name, value string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value), mode); err != nil {
		t.Fatal(err)
	}
	// WriteFile is subject to umask
	if err := os.Chmod(filepath.Join(dir, name), mode); err != nil {
		t.Fatal(err)
	}
}

func TestFileProvider_GetSecret(t *testing.T) {
	tmpDir := t.TempDir()
	writeSecret(t, tmpDir, "relay-token", "file-value\n", 0600)

	provider, err := NewFileProvider(tmpDir)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	value, err := provider.GetSecret(context.Background(), "relay-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "file-value" {
		t.Errorf("expected value 'file-value', got %q", value)
	}
	if !provider.Supports("relay-token") {
		t.Error("expected provider to support an existing file")
	}
}

func TestFileProvider_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	writeSecret(t, tmpDir, "open", "value", 0644)
	writeSecret(t, tmpDir, "blank", "  \n", 0400)
	if err := os.Mkdir(filepath.Join(tmpDir, "dir"), 0700); err != nil {
		t.Fatal(err)
	}

	provider, err := NewFileProvider(tmpDir)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	tests := []struct {
		name    string
		secret  string
		wantErr string
	}{
		{"missing", "nonexistent", "not found"},
		{"insecure permissions", "open", "insecure permissions"},
		{"empty file", "blank", "empty"},
		{"directory", "dir", "not a regular file"},
		{"traversal", "../etc/passwd", "directory traversal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.GetSecret(context.Background(), tt.secret)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if provider.Supports("../etc/passwd") {
		t.Error("traversal names must not be supported")
	}
}

func TestNewFileProvider_InvalidPath(t *testing.T) {
	if _, err := NewFileProvider(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	tmpDir := t.TempDir()
	writeSecret(t, tmpDir, "plain", "x", 0600)
	if _, err := NewFileProvider(filepath.Join(tmpDir, "plain")); err == nil {
		t.Error("expected error for a file path")
	}
}
