package search

import "github.com/deploymenttheory/go-blockidx/pkg/app"

// Validate validates a search request and parses its key
func (r *Request) Validate() error {
	if err := app.ValidateIndexPath(r.IndexPath); err != nil {
		return err
	}

	key, err := app.ParseUint64("key", r.Key)
	if err != nil {
		return err
	}
	r.key = key
	return nil
}
