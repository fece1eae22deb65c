package search

import (
	"fmt"
	"io"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// FormatOutput prints the value, or an explicit not found line
func FormatOutput(w io.Writer, response *Response, format string) error {
	if format != "table" {
		return app.WriteDocument(w, response, format)
	}

	r := response.Result
	if !r.Found {
		_, err := fmt.Fprintf(w, "Key %d not found.\n", r.Key)
		return err
	}
	_, err := fmt.Fprintf(w, "%d,%d\n", r.Key, r.Value)
	return err
}
