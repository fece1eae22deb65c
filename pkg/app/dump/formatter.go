package dump

import (
	"bufio"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-blockidx/internal/parsers/records"
	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// FormatPrintOutput formats listed entries. In table format the entries are
// written as key,value lines; streamed responses print nothing further.
func FormatPrintOutput(w io.Writer, response *PrintResponse, format string) error {
	if format != "table" {
		return app.WriteDocument(w, response, format)
	}

	out := bufio.NewWriter(w)
	line := make([]byte, 0, 48)
	for _, entry := range response.Entries {
		line = records.FormatRecord(line[:0], entry)
		if _, err := out.Write(line); err != nil {
			return err
		}
	}
	return out.Flush()
}

// FormatExtractOutput formats the export report
func FormatExtractOutput(w io.Writer, response *ExtractResponse, format string) error {
	if format != "table" {
		return app.WriteDocument(w, response, format)
	}

	r := response.Report
	kind := "plain"
	if r.Compressed {
		kind = "snappy"
	}
	_, err := fmt.Fprintf(w, "Extracted %d entries to '%s' (%s).\n", r.Entries, r.Output, kind)
	return err
}
