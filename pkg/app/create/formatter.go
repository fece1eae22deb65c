package create

import (
	"fmt"
	"io"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// FormatOutput formats the creation result according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	if format == "table" {
		_, err := fmt.Fprintf(w, "Index file '%s' created.\n", response.Index.Path)
		return err
	}
	return app.WriteDocument(w, response, format)
}
