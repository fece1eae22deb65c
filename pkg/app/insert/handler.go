package insert

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/types"
	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

// Handle inserts one key/value pair into an existing index
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := types.Entry{Key: req.key, Value: req.value}
	ctx.Log(fmt.Sprintf("Inserting %d,%d into %s", entry.Key, entry.Value, req.IndexPath))

	outcome, err := ctx.Index().Insert(ctx, req.IndexPath, entry)
	if err != nil {
		return nil, app.WrapError(fmt.Sprintf("cannot insert into %s", req.IndexPath), err)
	}

	if outcome.Splits > 0 {
		ctx.Log(fmt.Sprintf("Split %d node(s), allocated blocks %v", outcome.Splits, outcome.Allocated))
	}
	if outcome.RootChanged {
		ctx.Log(fmt.Sprintf("Root is now block %d", outcome.RootID))
	}

	return &Response{Outcome: outcome}, nil
}
