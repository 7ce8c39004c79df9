package main

import (
	"io"
	"os"

	"mercator-hq/courier/pkg/cli"
	"mercator-hq/courier/pkg/dispatch"

	"github.com/spf13/cobra"
)

var methodsFlags struct {
	output   string
	resource string
}

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the packaged methods",
	Long: `List every packaged method a caller can name in methodName, with the
platform resource and operation it maps to.

Examples:
  courier methods
  courier methods --resource tweet
  courier methods --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listMethods(os.Stdout, dispatch.DefaultRegistry(), methodsFlags.resource, cli.OutputFormat(methodsFlags.output))
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)

	methodsCmd.Flags().StringVarP(&methodsFlags.output, "output", "o", string(cli.FormatText), "output format: text, json, csv")
	methodsCmd.Flags().StringVar(&methodsFlags.resource, "resource", "", "only list methods of this resource")
}

func listMethods(w io.Writer, registry *dispatch.Registry, resource string, format cli.OutputFormat) error {
	table := cli.Table{Headers: []string{"method", "resource", "operation"}}
	for _, m := range registry.Methods() {
		if resource != "" && m.Resource != resource {
			continue
		}
		table.Rows = append(table.Rows, []string{m.Name, m.Resource, m.Operation})
	}

	return cli.NewFormatter(format).FormatTo(w, table)
}
