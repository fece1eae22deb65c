package search

import "github.com/deploymenttheory/go-blockidx/pkg/services"

// Request represents a point lookup
type Request struct {
	IndexPath string
	Key       string

	key uint64
}

// Response holds the lookup result. A missing key is a result, not an error.
type Response struct {
	Result services.SearchResult `json:"result" yaml:"result"`
}
