package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-blockidx/pkg/app/dump"
)

var printCmd = &cobra.Command{
	Use:   "print <index-file>",
	Short: "Print every key,value pair in ascending key order",
	Long: `Print the contents of an index as key,value lines in ascending key
order. With --output json or yaml the entries are collected into a document.

Examples:
  blockidx print orders.idx
  blockidx print orders.idx -o json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrint(args[0])
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}

func runPrint(indexPath string) error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	response, err := dump.HandlePrint(ctx, &dump.PrintRequest{
		IndexPath: indexPath,
		Stream:    ctx.OutputFormat == "table",
	})
	if err != nil {
		return err
	}

	return dump.FormatPrintOutput(ctx.Out(), response, ctx.OutputFormat)
}
