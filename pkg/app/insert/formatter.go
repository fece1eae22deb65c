package insert

import (
	"fmt"
	"io"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// FormatOutput formats the insertion result according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	if format != "table" {
		return app.WriteDocument(w, response, format)
	}

	o := response.Outcome
	if _, err := fmt.Fprintf(w, "Inserted %d,%d into block %d.\n", o.Entry.Key, o.Entry.Value, o.LeafID); err != nil {
		return err
	}
	if o.Splits > 0 {
		_, err := fmt.Fprintf(w, "Split %d node(s); root block %d, next free block %d.\n", o.Splits, o.RootID, o.NextFreeID)
		return err
	}
	return nil
}
