package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-blockidx/pkg/app/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <index-file> <key>",
	Short: "Look up the value for a key",
	Long: `Print the key,value pair stored for key. A key that is not present is
reported as not found and is not an error.

Examples:
  blockidx search orders.idx 42
  blockidx search orders.idx 42 -o json`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(indexPath, key string) error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	response, err := search.Handle(ctx, &search.Request{IndexPath: indexPath, Key: key})
	if err != nil {
		return err
	}

	return search.FormatOutput(ctx.Out(), response, ctx.OutputFormat)
}
