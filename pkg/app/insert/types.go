package insert

import "github.com/deploymenttheory/go-blockidx/pkg/services"

// Request represents a single key/value insertion. Key and Value hold the
// command-line text and are parsed by Validate.
type Request struct {
	IndexPath string
	Key       string
	Value     string

	key   uint64
	value uint64
}

// Response reports the effect of the insertion on the tree
type Response struct {
	Outcome services.InsertOutcome `json:"outcome" yaml:"outcome"`
}
