package create

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// Handle creates a new, empty index file
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Creating index file: %s", req.IndexPath))

	info, err := ctx.Index().Create(ctx, req.IndexPath)
	if err != nil {
		return nil, app.WrapError(fmt.Sprintf("cannot create index %s", req.IndexPath), err)
	}

	return &Response{Index: info}, nil
}
