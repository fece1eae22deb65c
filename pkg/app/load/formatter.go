package load

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// FormatOutput formats the load report according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	if format != "table" {
		return app.WriteDocument(w, response, format)
	}

	r := response.Report
	fmt.Fprintf(w, "Loaded %d records from %s", r.Inserted, r.Source)
	if r.Compressed {
		fmt.Fprint(w, " (snappy)")
	}
	fmt.Fprintf(w, " in %v.\n", r.Elapsed)
	fmt.Fprintf(w, "Splits: %d, blocks allocated: %d, root block %d, next free block %d.\n",
		r.Splits, r.BlocksAllocated, r.RootID, r.NextFreeID)

	if r.Skipped == 0 {
		return nil
	}

	fmt.Fprintf(w, "\nSkipped %d malformed records", r.Skipped)
	if len(r.SkippedRecords) < r.Skipped {
		fmt.Fprintf(w, " (showing first %d)", len(r.SkippedRecords))
	}
	fmt.Fprintln(w, ":")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "LINE\tRECORD\tREASON\n")
	fmt.Fprintf(tw, "----\t------\t------\n")
	for _, skip := range r.SkippedRecords {
		fmt.Fprintf(tw, "%d\t%q\t%s\n", skip.Line, skip.Raw, skip.Reason)
	}
	return tw.Flush()
}
