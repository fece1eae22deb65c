package dump

import (
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// Validate validates a print request
func (r *PrintRequest) Validate() error {
	return app.ValidateIndexPath(r.IndexPath)
}

// Validate validates an extract request
func (r *ExtractRequest) Validate() error {
	if err := app.ValidateIndexPath(r.IndexPath); err != nil {
		return err
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return app.NewError(app.ErrCodeInvalidInput, "output file path is required", nil)
	}
	if filepath.Clean(r.OutputPath) == filepath.Clean(r.IndexPath) {
		return app.NewError(app.ErrCodeInvalidInput, "output file must differ from the index file", nil)
	}
	return nil
}
