package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-blockidx/pkg/app/load"
)

var loadMaxErrors int

var loadCmd = &cobra.Command{
	Use:   "load <index-file> <source-file>",
	Short: "Insert key,value records from a file or stdin",
	Long: `Insert every key,value line of the source into the index, in order.
Malformed lines are skipped and reported; the rest of the source is still
loaded. Use - to read from standard input. Snappy compressed sources are
detected automatically. Interrupting a load keeps every record inserted so
far.

Examples:
  blockidx load orders.idx orders.csv
  blockidx print old.idx | blockidx load new.idx -
  blockidx load orders.idx orders.csv.sz --max-errors 0`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxErrors := loadMaxErrors
		if !cmd.Flags().Changed("max-errors") {
			maxErrors = GetConfig().Load.MaxReportedErrors
		}
		return runLoad(args[0], args[1], maxErrors)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().IntVar(&loadMaxErrors, "max-errors", 20, "skipped records listed in the report (0 lists all)")
}

func runLoad(indexPath, sourcePath string, maxErrors int) error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	ctx, cancel := ctx.WithCancel()
	defer cancel()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	go func() {
		select {
		case <-interrupts:
			ctx.Warn("interrupted, stopping after the current record")
			cancel()
		case <-ctx.Done():
		}
	}()

	ctx.SetProgress(func(message string, percent int) {
		ctx.Logf("[%3d%%] %s", percent, message)
	})

	response, err := load.Handle(ctx, &load.Request{
		IndexPath:         indexPath,
		SourcePath:        sourcePath,
		MaxReportedErrors: maxErrors,
		Stdin:             os.Stdin,
	})
	if response != nil {
		if formatErr := load.FormatOutput(ctx.Out(), response, ctx.OutputFormat); formatErr != nil && err == nil {
			err = formatErr
		}
	}
	return err
}
