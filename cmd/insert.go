package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-blockidx/pkg/app/insert"
)

var insertCmd = &cobra.Command{
	Use:   "insert <index-file> <key> <value>",
	Short: "Insert one key/value pair",
	Long: `Insert a key/value pair into an existing index. Duplicate keys are
kept alongside earlier entries.

Examples:
  blockidx insert orders.idx 42 1700`,

	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInsert(args[0], args[1], args[2])
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}

func runInsert(indexPath, key, value string) error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	response, err := insert.Handle(ctx, &insert.Request{
		IndexPath: indexPath,
		Key:       key,
		Value:     value,
	})
	if err != nil {
		return err
	}

	return insert.FormatOutput(ctx.Out(), response, ctx.OutputFormat)
}
