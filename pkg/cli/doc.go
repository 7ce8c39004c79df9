/*
Package cli provides command-line helpers for the courier command.

Output Formatting:

Commands print results as text, JSON or CSV. Tabular results use Table:

	table := cli.Table{Headers: []string{"method", "resource"}}
	table.Rows = append(table.Rows, []string{"getUserByScreenName", "user"})
	if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, table); err != nil {
		return err
	}

Errors:

ConfigErrors splits a configuration validation failure into per-field
ConfigError values for display; CommandError wraps a failed subcommand.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	return srv.Start(ctx)
*/
package cli
