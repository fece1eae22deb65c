package stat

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// FormatOutput formats index statistics according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	if format != "table" {
		return app.WriteDocument(w, response, format)
	}

	info := response.Stats.Info
	fmt.Fprintf(w, "Index:       %s\n", info.Path)
	fmt.Fprintf(w, "Magic:       %s\n", info.Magic)
	fmt.Fprintf(w, "Root block:  %d\n", info.RootID)
	fmt.Fprintf(w, "Next free:   %d\n", info.NextFreeID)
	fmt.Fprintf(w, "File blocks: %d\n", info.FileBlocks)

	if a := response.Stats.Analysis; a != nil {
		fmt.Fprintf(w, "\nHeight %d, %d nodes (%d leaves), %d entries, %d orphan blocks, fill %.1f%%\n",
			a.Height, a.NodeCount, a.LeafCount, a.EntryCount, a.OrphanBlocks, a.FillFactor*100)

		if len(a.Levels) > 0 {
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "\nLEVEL\tNODES\tKEYS\tMIN\tMAX\tAVG\n")
			fmt.Fprintf(tw, "-----\t-----\t----\t---\t---\t---\n")
			for _, level := range a.Levels {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%.1f\n",
					level.Level, level.NodeCount, level.KeyCount,
					level.MinKeyCount, level.MaxKeyCount, level.AverageKeyCount)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}

	if v := response.Stats.Verification; v != nil {
		if v.Valid {
			fmt.Fprintf(w, "\nVerification passed (%d nodes).\n", v.NodesSeen)
		} else {
			fmt.Fprintf(w, "\nVerification failed (%d nodes, %d violations):\n", v.NodesSeen, len(v.Violations))
			for _, violation := range v.Violations {
				fmt.Fprintf(w, "  - %s\n", violation)
			}
		}
	}
	return nil
}
