package load

import (
	"fmt"
	"io"
	"os"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
	"github.com/deploymenttheory/go-blockidx/pkg/services"
)

// Handle inserts every well-formed record of the source into the index.
// The response is returned alongside any error so partial progress can be
// reported.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	src, name, size, closeSource, err := openSource(req)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	ctx.Log(fmt.Sprintf("Loading %s into %s", name, req.IndexPath))

	counter := &countingReader{r: src}
	lastPercent := -1
	ctx.Progress(fmt.Sprintf("loading %s", name), 0)

	report, err := ctx.Index().BulkLoad(ctx, req.IndexPath, counter, services.LoadOptions{
		SourceName:        name,
		MaxReportedErrors: req.MaxReportedErrors,
		OnSkip: func(skip services.SkippedRecord) {
			ctx.Warn(fmt.Sprintf("line %d skipped: %s", skip.Line, skip.Reason))
		},
		OnRecord: func(line int) {
			// Stdin has no known size; only the final 100% is reported
			if size <= 0 {
				return
			}
			percent := int(counter.n * 100 / size)
			if percent > 99 {
				percent = 99
			}
			if percent != lastPercent {
				lastPercent = percent
				ctx.Progress(fmt.Sprintf("line %d", line), percent)
			}
		},
	})

	response := &Response{Report: report}
	if err != nil {
		return response, app.WrapError(
			fmt.Sprintf("load stopped after %d records", report.Inserted), err)
	}

	ctx.Progress(fmt.Sprintf("loaded %d records", report.Inserted), 100)
	ctx.Log(fmt.Sprintf("Load %s finished in %v", report.LoadID, report.Elapsed))
	return response, nil
}

// countingReader tracks the source bytes consumed so far
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// openSource returns the record source, its display name and its size in
// bytes, 0 when unknown
func openSource(req *Request) (io.Reader, string, int64, func(), error) {
	if req.SourcePath == StdinSource {
		if req.Stdin != nil {
			return req.Stdin, "stdin", 0, func() {}, nil
		}
		return os.Stdin, "stdin", 0, func() {}, nil
	}

	f, err := os.Open(req.SourcePath)
	if err != nil {
		return nil, "", 0, nil, app.NewError(app.ErrCodeInvalidInput,
			fmt.Sprintf("cannot open source file %s", req.SourcePath), err)
	}

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return f, req.SourcePath, size, func() { f.Close() }, nil
}
