package dump

import (
	"fmt"

	"github.com/deploymenttheory/go-blockidx/internal/types"
	"github.com/deploymenttheory/go-blockidx/pkg/app"
	"github.com/deploymenttheory/go-blockidx/pkg/services"
)

// HandlePrint lists the index contents in ascending key order
func HandlePrint(ctx *app.Context, req *PrintRequest) (*PrintResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Stream {
		count, err := ctx.Index().Dump(ctx, req.IndexPath, ctx.Out(), services.DumpOptions{})
		if err != nil {
			return nil, app.WrapError(fmt.Sprintf("cannot print %s", req.IndexPath), err)
		}
		ctx.Log(fmt.Sprintf("Printed %d entries", count))
		return &PrintResponse{Count: count, Entries: []types.Entry{}}, nil
	}

	entries := []types.Entry{}
	err := ctx.Index().Traverse(ctx, req.IndexPath, func(entry types.Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, app.WrapError(fmt.Sprintf("cannot print %s", req.IndexPath), err)
	}

	return &PrintResponse{Count: len(entries), Entries: entries}, nil
}

// HandleExtract writes the index contents to a new file
func HandleExtract(ctx *app.Context, req *ExtractRequest) (*ExtractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Extracting %s to %s", req.IndexPath, req.OutputPath))

	report, err := ctx.Index().Extract(ctx, req.IndexPath, req.OutputPath, services.ExtractOptions{
		Compress: req.Compress,
		Force:    req.Force,
	})
	if err != nil {
		return nil, app.WrapError(fmt.Sprintf("cannot extract %s to %s", req.IndexPath, req.OutputPath), err)
	}

	if report.Replaced {
		ctx.Warn(fmt.Sprintf("replaced existing file %s", report.Output))
	}
	return &ExtractResponse{Report: report}, nil
}
