package dump

import (
	"github.com/deploymenttheory/go-blockidx/internal/types"
	"github.com/deploymenttheory/go-blockidx/pkg/services"
)

// PrintRequest represents listing every entry of an index
type PrintRequest struct {
	IndexPath string
	// Stream writes key,value lines directly to the context output instead
	// of collecting entries into the response
	Stream bool
}

// PrintResponse holds the listed entries. Entries is empty when the lines
// were streamed.
type PrintResponse struct {
	Count   int           `json:"count" yaml:"count"`
	Entries []types.Entry `json:"entries" yaml:"entries"`
}

// ExtractRequest represents exporting every entry of an index to a file
type ExtractRequest struct {
	IndexPath  string
	OutputPath string
	Force      bool
	Compress   bool
}

// ExtractResponse reports the export
type ExtractResponse struct {
	Report services.ExtractReport `json:"report" yaml:"report"`
}
