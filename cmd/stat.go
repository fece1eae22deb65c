package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-blockidx/pkg/app/stat"
)

var statVerify bool

var statCmd = &cobra.Command{
	Use:   "stat <index-file>",
	Short: "Report tree structure and verify its invariants",
	Long: `Show the header of an index and analyze its tree: height, node and
entry counts, per-level key distribution and fill factor. With --verify every
node is checked for ordering, bounds, parent links and uniform leaf depth;
any violation makes the command fail.

Examples:
  blockidx stat orders.idx
  blockidx stat orders.idx --verify -o yaml`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStat(args[0])
	},
}

func init() {
	rootCmd.AddCommand(statCmd)

	statCmd.Flags().BoolVar(&statVerify, "verify", false, "check every tree invariant")
}

func runStat(indexPath string) error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	response, err := stat.Handle(ctx, &stat.Request{IndexPath: indexPath, Verify: statVerify})
	if err != nil {
		return err
	}

	if err := stat.FormatOutput(ctx.Out(), response, ctx.OutputFormat); err != nil {
		return err
	}
	return response.Err()
}
