package stat

import "github.com/deploymenttheory/go-blockidx/pkg/app"

// Validate validates the stat request
func (r *Request) Validate() error {
	return app.ValidateIndexPath(r.IndexPath)
}
