package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-blockidx/pkg/app/dump"
)

var (
	extractForce    bool
	extractCompress bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <index-file> <output-file>",
	Short: "Write every key,value pair to a new file",
	Long: `Write the contents of an index to a new file as key,value lines in
ascending key order. An existing output file is an error unless --force is
given. With --compress the file is written as a snappy framed stream, which
load reads back transparently.

Examples:
  blockidx extract orders.idx orders.csv
  blockidx extract orders.idx orders.csv.sz --compress`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		compress := extractCompress
		if !cmd.Flags().Changed("compress") {
			compress = GetConfig().Extract.Compress
		}
		return runExtract(args[0], args[1], compress)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVarP(&extractForce, "force", "f", false, "replace an existing output file")
	extractCmd.Flags().BoolVarP(&extractCompress, "compress", "z", false, "write a snappy compressed stream")
}

func runExtract(indexPath, outputPath string, compress bool) error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	response, err := dump.HandleExtract(ctx, &dump.ExtractRequest{
		IndexPath:  indexPath,
		OutputPath: outputPath,
		Force:      extractForce,
		Compress:   compress,
	})
	if err != nil {
		return err
	}

	return dump.FormatExtractOutput(ctx.Out(), response, ctx.OutputFormat)
}
