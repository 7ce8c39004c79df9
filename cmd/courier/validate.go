package main

import (
	"fmt"
	"io"
	"os"

	"mercator-hq/courier/pkg/cli"
	"mercator-hq/courier/pkg/config"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the relay configuration",
	Long: `Load the configuration file and environment overrides and report every
invalid field. Exits non-zero when the configuration would not start.

Examples:
  # Validate the default config.yaml (environment only when it is missing)
  courier validate

  # Validate a specific file
  courier validate --config /etc/courier/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateConfig(os.Stdout, cfgFile, configOptional(cmd))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(w io.Writer, path string, optional bool) error {
	cfg, err := config.LoadConfigWithEnvOverrides(path, optional)
	if err != nil {
		errs := cli.ConfigErrors(err)
		fmt.Fprintf(w, "✗ Configuration invalid (%d errors)\n", len(errs))
		for _, e := range errs {
			if e.Field == "" {
				fmt.Fprintf(w, "  - %s\n", e.Message)
				continue
			}
			fmt.Fprintf(w, "  - %s: %s\n", e.Field, e.Message)
		}
		return cli.NewCommandError("validate", fmt.Errorf("%d configuration errors", len(errs)))
	}

	fmt.Fprintln(w, "✓ Configuration valid")
	if verbose {
		fmt.Fprintf(w, "  listen address: %s\n", cfg.Proxy.ListenAddress)
		fmt.Fprintf(w, "  api origin:     %s\n", cfg.Platform.APIOrigin)
		fmt.Fprintf(w, "  web origin:     %s\n", cfg.Platform.WebOrigin)
		fmt.Fprintf(w, "  empty results:  %t\n", cfg.Errors.EmptyResult.IsEnabled())
	}
	return nil
}
