package search

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// Handle looks up a key in an existing index
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := ctx.Index().Search(ctx, req.IndexPath, req.key)
	if err != nil {
		return nil, app.WrapError(fmt.Sprintf("cannot search %s", req.IndexPath), err)
	}

	ctx.Log(fmt.Sprintf("Read %d block(s)", result.BlocksRead))
	return &Response{Result: result}, nil
}
