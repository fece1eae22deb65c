package load

import (
	"strings"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// Validate validates the load request
func (r *Request) Validate() error {
	if err := app.ValidateIndexPath(r.IndexPath); err != nil {
		return err
	}
	if strings.TrimSpace(r.SourcePath) == "" {
		return app.NewError(app.ErrCodeInvalidInput, "source file path is required", nil)
	}
	if r.SourcePath == r.IndexPath {
		return app.NewError(app.ErrCodeInvalidInput, "source file must differ from the index file", nil)
	}
	if r.MaxReportedErrors < 0 {
		return app.NewError(app.ErrCodeInvalidInput, "max reported errors cannot be negative", nil)
	}
	return nil
}
