package load

import (
	"io"

	"github.com/deploymenttheory/go-blockidx/pkg/services"
)

// StdinSource selects standard input as the record source
const StdinSource = "-"

// Request represents a bulk load of key,value records into an index
type Request struct {
	IndexPath  string
	SourcePath string

	// MaxReportedErrors caps the skipped records listed in the report.
	// Zero lists them all.
	MaxReportedErrors int

	// Stdin is read when SourcePath is StdinSource
	Stdin io.Reader
}

// Response holds the load summary
type Response struct {
	Report services.LoadReport `json:"report" yaml:"report"`
}
