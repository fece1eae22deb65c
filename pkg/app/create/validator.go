package create

import "github.com/deploymenttheory/go-blockidx/pkg/app"

// Validate validates a creation request
func (r *Request) Validate() error {
	return app.ValidateIndexPath(r.IndexPath)
}
