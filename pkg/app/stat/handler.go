package stat

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// Handle analyzes the tree stored in an index file
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Analyzing %s", req.IndexPath))

	stats, err := ctx.Index().Stat(ctx, req.IndexPath, req.Verify)
	if err != nil {
		return nil, app.WrapError(fmt.Sprintf("cannot analyze %s", req.IndexPath), err)
	}

	if v := stats.Verification; v != nil {
		ctx.Log(fmt.Sprintf("Verified %d nodes", v.NodesSeen))
		for _, violation := range v.Violations {
			ctx.Warn(violation)
		}
	}

	return &Response{Stats: stats}, nil
}
