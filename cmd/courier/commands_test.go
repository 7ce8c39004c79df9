package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/courier/pkg/cli"
	"mercator-hq/courier/pkg/config"
	"mercator-hq/courier/pkg/dispatch"
	"mercator-hq/courier/pkg/proxy/types"
	"mercator-hq/courier/pkg/telemetry/metrics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRunConfig_RequiresToken(t *testing.T) {
	t.Setenv("COURIER_AUTH_TOKEN", "")

	_, err := loadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"), true, "", "")

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigError, got %v", err)
	}
	if !strings.Contains(err.Error(), "auth.token") {
		t.Errorf("error should name auth.token: %v", err)
	}
}

func TestLoadRunConfig_Overrides(t *testing.T) {
	t.Setenv("COURIER_AUTH_TOKEN", "secret")
	t.Setenv("PORT", "")

	cfg, err := loadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"), true, "127.0.0.1:9999", "debug")
	if err != nil {
		t.Fatalf("loadRunConfig() error = %v", err)
	}
	if cfg.Auth.Token != "secret" {
		t.Errorf("Auth.Token = %q", cfg.Auth.Token)
	}
	if cfg.Proxy.ListenAddress != "127.0.0.1:9999" {
		t.Errorf("ListenAddress = %q", cfg.Proxy.ListenAddress)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadRunConfig_InvalidLogLevelOverride(t *testing.T) {
	t.Setenv("COURIER_AUTH_TOKEN", "secret")

	if _, err := loadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"), true, "", "loud"); err == nil {
		t.Error("Expected error for invalid log level override")
	}
}

func TestLoadRunConfig_ExplicitPathMustExist(t *testing.T) {
	t.Setenv("COURIER_AUTH_TOKEN", "secret")

	if _, err := loadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"), false, "", ""); err == nil {
		t.Error("Expected error for a missing explicit config file")
	}
}

func TestLoadRunConfig_ResolvesSecretReference(t *testing.T) {
	t.Setenv("COURIER_AUTH_TOKEN", "")

	t.Run("environment", func(t *testing.T) {
		t.Setenv("COURIER_SECRET_RELAY_TOKEN", "from-env")
		path := writeConfig(t, "auth:\n  token: ${secret:relay-token}\n")

		cfg, err := loadRunConfig(path, false, "", "")
		if err != nil {
			t.Fatalf("loadRunConfig() error = %v", err)
		}
		if cfg.Auth.Token != "from-env" {
			t.Errorf("Auth.Token = %q", cfg.Auth.Token)
		}
	})

	t.Run("secrets directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "relay-token"), []byte("from-file\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.Chmod(filepath.Join(dir, "relay-token"), 0o600); err != nil {
			t.Fatal(err)
		}
		path := writeConfig(t, "auth:\n  token: ${secret:relay-token}\n  secrets_dir: "+dir+"\n")

		cfg, err := loadRunConfig(path, false, "", "")
		if err != nil {
			t.Fatalf("loadRunConfig() error = %v", err)
		}
		if cfg.Auth.Token != "from-file" {
			t.Errorf("Auth.Token = %q", cfg.Auth.Token)
		}
	})

	t.Run("unresolved", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  token: ${secret:absent-token}\n")

		_, err := loadRunConfig(path, false, "", "")

		var cfgErr *cli.ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "auth.token" {
			t.Fatalf("Expected auth.token ConfigError, got %v", err)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	t.Setenv("COURIER_AUTH_TOKEN", "")

	t.Run("valid file", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  token: secret\n")
		var out bytes.Buffer

		if err := validateConfig(&out, path, false); err != nil {
			t.Fatalf("validateConfig() error = %v\n%s", err, out.String())
		}
		if !strings.Contains(out.String(), "Configuration valid") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("invalid file lists fields", func(t *testing.T) {
		path := writeConfig(t, "platform:\n  api_origin: \"not a url\"\n")
		var out bytes.Buffer

		err := validateConfig(&out, path, false)

		var cmdErr *cli.CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("Expected CommandError, got %v", err)
		}
		if !strings.Contains(out.String(), "auth.token") {
			t.Errorf("output should list auth.token: %q", out.String())
		}
		if !strings.Contains(out.String(), "platform.api_origin") {
			t.Errorf("output should list platform.api_origin: %q", out.String())
		}
	})
}

func TestListMethods(t *testing.T) {
	registry := dispatch.DefaultRegistry()

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		if err := listMethods(&out, registry, "", cli.FormatJSON); err != nil {
			t.Fatalf("listMethods() error = %v", err)
		}

		var records []map[string]string
		if err := json.Unmarshal(out.Bytes(), &records); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(records) != registry.Len() {
			t.Errorf("records = %d, want %d", len(records), registry.Len())
		}
	})

	t.Run("resource filter", func(t *testing.T) {
		var out bytes.Buffer
		if err := listMethods(&out, registry, dispatch.ResourceUser, cli.FormatCSV); err != nil {
			t.Fatalf("listMethods() error = %v", err)
		}

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if lines[0] != "method,resource,operation" {
			t.Errorf("header = %q", lines[0])
		}
		for _, line := range lines[1:] {
			if !strings.Contains(line, ","+dispatch.ResourceUser+",") {
				t.Errorf("unexpected row %q", line)
			}
		}
		if !strings.Contains(out.String(), "getUserByScreenName,user,UserByScreenName") {
			t.Errorf("missing getUserByScreenName: %q", out.String())
		}
	})
}

func TestBuildRelay_RawPath(t *testing.T) {
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.1/account/settings.json" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Cookie"); got != "auth_token=a; ct0=c" {
			t.Errorf("Unexpected cookie %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"screen_name":"jack"}`)
	}))
	defer platform.Close()

	cfg := config.Default()
	cfg.Platform.APIOrigin = platform.URL
	cfg.Platform.WebOrigin = platform.URL

	relay := buildRelay(cfg, nil, metrics.NewCollector(&cfg.Telemetry.Metrics, nil), slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := relay.Execute(context.Background(), &types.Envelope{
		AuthToken:    "a",
		CSRFToken:    "c",
		Headers:      map[string]any{"api": map[string]any{}},
		FeatureFlags: map[string]any{},
		EndpointPath: "/1.1/account/settings.json",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	doc, _ := result.(map[string]any)
	if doc["screen_name"] != "jack" {
		t.Errorf("result = %#v", result)
	}
}
