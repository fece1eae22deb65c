package stat

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
	"github.com/deploymenttheory/go-blockidx/pkg/services"
)

// Request represents a structural report on an index
type Request struct {
	IndexPath string
	// Verify checks every tree invariant in addition to the analysis
	Verify bool
}

// Response holds the index statistics
type Response struct {
	Stats services.IndexStats `json:"stats" yaml:"stats"`
}

// Err reports a failed verification as a corrupt format error
func (r *Response) Err() error {
	v := r.Stats.Verification
	if v == nil || v.Valid {
		return nil
	}
	return app.NewError(app.ErrCodeCorruptFormat,
		fmt.Sprintf("index %s failed verification with %d violation(s)", r.Stats.Info.Path, len(v.Violations)), nil)
}
