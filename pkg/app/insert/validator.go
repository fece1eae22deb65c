package insert

import "github.com/deploymenttheory/go-blockidx/pkg/app"

// Validate validates an insertion request and parses its key and value
func (r *Request) Validate() error {
	if err := app.ValidateIndexPath(r.IndexPath); err != nil {
		return err
	}

	key, err := app.ParseUint64("key", r.Key)
	if err != nil {
		return err
	}
	value, err := app.ParseUint64("value", r.Value)
	if err != nil {
		return err
	}

	r.key, r.value = key, value
	return nil
}
