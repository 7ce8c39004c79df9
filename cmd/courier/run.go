package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mercator-hq/courier/pkg/cli"
	"mercator-hq/courier/pkg/config"
	"mercator-hq/courier/pkg/dispatch"
	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/passthrough"
	"mercator-hq/courier/pkg/secrets"
	"mercator-hq/courier/pkg/server"
	"mercator-hq/courier/pkg/telemetry/logging"
	"mercator-hq/courier/pkg/telemetry/metrics"
	"mercator-hq/courier/pkg/telemetry/tracing"
	"mercator-hq/courier/pkg/transport"

	"github.com/spf13/cobra"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay server",
	Long: `Start the relay server with the specified configuration.

The server refuses to start without an auth token (auth.token or
COURIER_AUTH_TOKEN): a relay without one would answer every call with 500.

Examples:
  # Start with environment configuration only
  COURIER_AUTH_TOKEN=secret courier run

  # Start with custom config
  courier run --config /etc/courier/config.yaml

  # Override listen address
  courier run --listen 127.0.0.1:9090

  # Validate config without starting server
  courier run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cfgFile, configOptional(cmd), runFlags.listenAddress, runFlags.logLevel)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stdout))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	relay := buildRelay(cfg, tracer, collector, logger)

	srv := server.NewServer(cfg, server.Dependencies{
		Relay:   relay,
		Metrics: collector,
		Tracer:  tracer,
		Version: Version,
	})

	fmt.Printf("✓ Relay listening on %s\n", cfg.Proxy.ListenAddress)
	if cfg.Telemetry.Health.IsEnabled() {
		fmt.Printf("✓ Health endpoint: %s\n", cfg.Telemetry.Health.LivenessPath)
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		fmt.Printf("✓ Metrics endpoint: %s\n", cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(cli.SetupSignalHandler()); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

// loadRunConfig loads the configuration, applies flag overrides, resolves
// secret references in the auth token and validates the result. A missing
// auth token is a validation failure.
func loadRunConfig(path string, optional bool, listenAddress, logLevel string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(path, optional)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if err := resolveAuthToken(context.Background(), &cfg.Auth); err != nil {
		return nil, err
	}

	if listenAddress == "" && logLevel == "" {
		return cfg, nil
	}

	if listenAddress != "" {
		cfg.Proxy.ListenAddress = listenAddress
	}
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	return cfg, nil
}

// resolveAuthToken replaces ${secret:name} references in the auth token.
// Environment secrets take precedence over the secrets directory.
func resolveAuthToken(ctx context.Context, auth *config.AuthConfig) error {
	if !secrets.HasReference(auth.Token) {
		return nil
	}

	providers := []secrets.Provider{secrets.NewEnvProvider("")}
	if auth.SecretsDir != "" {
		files, err := secrets.NewFileProvider(auth.SecretsDir)
		if err != nil {
			return cli.NewConfigError("auth.secrets_dir", err.Error())
		}
		providers = append(providers, files)
	}

	token, err := secrets.NewResolver(providers...).Resolve(ctx, auth.Token)
	if err != nil {
		return cli.NewConfigError("auth.token", err.Error())
	}
	if token == "" {
		return cli.NewConfigError("auth.token", "auth token resolved to an empty value")
	}
	auth.Token = token
	return nil
}

// buildRelay wires the dispatcher and its two execution paths over one
// shared outbound client.
func buildRelay(cfg *config.Config, tracer *tracing.Tracer, collector *metrics.Collector, logger *slog.Logger) *dispatch.Dispatcher {
	client := transport.NewClient(transport.Config{
		Timeout:             cfg.Platform.Timeout,
		MaxIdleConns:        cfg.Platform.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Platform.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Platform.IdleConnTimeout,
	})

	errOpts := normalize.Options{
		URLMaxLength:     cfg.Errors.URLMaxLength,
		RawBodyMaxLength: cfg.Errors.RawBodyMaxLength,
	}

	raw := passthrough.New(passthrough.Config{
		HTTPClient:     client,
		WebOrigin:      cfg.Platform.WebOrigin,
		APIOrigin:      cfg.Platform.APIOrigin,
		InternalPrefix: cfg.Platform.InternalPrefix,
		Errors:         errOpts,
		Tracer:         tracer,
		Logger:         logger,
	})

	invoker := dispatch.NewInvoker(dispatch.InvokerConfig{
		Policy:  dispatch.NewEmptyResultPolicy(cfg.Errors.EmptyResult),
		Errors:  errOpts,
		Metrics: collector,
		Logger:  logger,
	})

	return dispatch.New(dispatch.Config{
		HTTPClient: client,
		WebOrigin:  cfg.Platform.WebOrigin,
		APIOrigin:  cfg.Platform.APIOrigin,
		Invoker:    invoker,
		Raw:        raw,
		Tracer:     tracer,
	})
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Courier v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	slog.Debug("platform origins",
		"api_origin", cfg.Platform.APIOrigin,
		"web_origin", cfg.Platform.WebOrigin,
		"internal_prefix", cfg.Platform.InternalPrefix,
	)
	slog.Debug("empty-result policy", "enabled", cfg.Errors.EmptyResult.IsEnabled())
	if cfg.Telemetry.Tracing.Enabled {
		slog.Debug("tracing enabled", "endpoint", cfg.Telemetry.Tracing.Endpoint)
	}
}
