package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-blockidx/pkg/app/create"
)

var createCmd = &cobra.Command{
	Use:   "create <index-file>",
	Short: "Create a new, empty index file",
	Long: `Create a new index file holding only its header block.

Fails if the file already exists; the existing file is left untouched.

Examples:
  blockidx create orders.idx`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(indexPath string) error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	response, err := create.Handle(ctx, &create.Request{IndexPath: indexPath})
	if err != nil {
		return err
	}

	return create.FormatOutput(ctx.Out(), response, ctx.OutputFormat)
}
