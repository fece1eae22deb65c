package create

import "github.com/deploymenttheory/go-blockidx/pkg/services"

// Request represents an index creation request
type Request struct {
	IndexPath string
}

// Response describes the newly created index
type Response struct {
	Index services.IndexInfo `json:"index" yaml:"index"`
}
