package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

const defaultConfigFile = "config.yaml"

var rootCmd = &cobra.Command{
	Use:   "courier",
	Short: "Courier - authenticated relay for the social platform's private API",
	Long: `Courier is a single-endpoint HTTP relay. Callers post an envelope with
session credentials, a header seed, feature flags and either a packaged
method name or a raw endpoint path; Courier performs the platform call and
returns a normalized JSON envelope.

Configuration is read from a YAML file (optional when the default path is
missing), then COURIER_* environment variables. PORT overrides the listen
port and COURIER_AUTH_TOKEN sets the bearer token callers must present.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// configOptional reports whether a missing config file falls back to
// defaults. Only the default path is optional; an explicit --config must
// exist.
func configOptional(cmd *cobra.Command) bool {
	return !cmd.Flags().Changed("config")
}
