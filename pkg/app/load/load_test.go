package load

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
	"github.com/deploymenttheory/go-blockidx/pkg/app/create"
	"github.com/deploymenttheory/go-blockidx/pkg/app/search"
)

func newIndex(t *testing.T, ctx *app.Context) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "idx")
	_, err := create.Handle(ctx, &create.Request{IndexPath: path})
	require.NoError(t, err)
	return path
}

func quietContext(stderr *bytes.Buffer) *app.Context {
	ctx := app.NewContext()
	ctx.NoColor = true
	ctx.Stderr = stderr
	ctx.Stdout = &bytes.Buffer{}
	return ctx
}

func TestHandleFromFile(t *testing.T) {
	var stderr bytes.Buffer
	ctx := quietContext(&stderr)
	path := newIndex(t, ctx)

	source := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, os.WriteFile(source, []byte("1,10\n2,20\nbad\n3,30\n"), 0o644))

	resp, err := Handle(ctx, &Request{IndexPath: path, SourcePath: source})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Report.Inserted)
	assert.Equal(t, 1, resp.Report.Skipped)
	assert.Equal(t, source, resp.Report.Source)
	assert.Contains(t, stderr.String(), "Warning: line 3 skipped")

	found, err := search.Handle(ctx, &search.Request{IndexPath: path, Key: "3"})
	require.NoError(t, err)
	assert.True(t, found.Result.Found)
	assert.Equal(t, uint64(30), found.Result.Value)
}

func TestHandleFromStdin(t *testing.T) {
	var stderr bytes.Buffer
	ctx := quietContext(&stderr)
	path := newIndex(t, ctx)

	var lines strings.Builder
	for i := 1; i <= 100; i++ {
		lines.WriteString(strings.Repeat(" ", i%2))
		lines.WriteString(strconv.Itoa(i) + "," + strconv.Itoa(i*3) + "\n")
	}

	resp, err := Handle(ctx, &Request{
		IndexPath:  path,
		SourcePath: StdinSource,
		Stdin:      strings.NewReader(lines.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, "stdin", resp.Report.Source)
	assert.Equal(t, 100, resp.Report.Inserted)
	assert.Greater(t, resp.Report.Splits, 0)
}

func TestHandleReportsProgress(t *testing.T) {
	var stderr bytes.Buffer
	ctx := quietContext(&stderr)
	path := newIndex(t, ctx)

	var lines strings.Builder
	for i := 1; i <= 2000; i++ {
		lines.WriteString(strconv.Itoa(i) + "," + strconv.Itoa(i) + "\n")
	}
	source := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, os.WriteFile(source, []byte(lines.String()), 0o644))

	var percents []int
	ctx.SetProgress(func(_ string, percent int) { percents = append(percents, percent) })

	resp, err := Handle(ctx, &Request{IndexPath: path, SourcePath: source})
	require.NoError(t, err)
	assert.Equal(t, 2000, resp.Report.Inserted)

	require.Greater(t, len(percents), 2)
	assert.Equal(t, 0, percents[0])
	assert.Equal(t, 100, percents[len(percents)-1])
	assert.IsNonDecreasing(t, percents)
}

func TestHandleStdinReportsCompletionOnly(t *testing.T) {
	var stderr bytes.Buffer
	ctx := quietContext(&stderr)
	path := newIndex(t, ctx)

	var percents []int
	ctx.SetProgress(func(_ string, percent int) { percents = append(percents, percent) })

	_, err := Handle(ctx, &Request{
		IndexPath:  path,
		SourcePath: StdinSource,
		Stdin:      strings.NewReader("1,1\n2,2\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 100}, percents)
}

func TestHandleCancelled(t *testing.T) {
	var stderr bytes.Buffer
	ctx := quietContext(&stderr)
	path := newIndex(t, ctx)

	cancelable, cancel := ctx.WithCancel()
	cancel()

	resp, err := Handle(cancelable, &Request{
		IndexPath:  path,
		SourcePath: StdinSource,
		Stdin:      strings.NewReader("1,1\n"),
	})
	require.NotNil(t, resp)
	assert.Equal(t, 0, resp.Report.Inserted)

	var ce *app.CommonError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, app.ErrCodeCanceled, ce.Code)
}

func TestHandleErrors(t *testing.T) {
	var stderr bytes.Buffer
	ctx := quietContext(&stderr)
	path := newIndex(t, ctx)

	_, err := Handle(ctx, &Request{IndexPath: path, SourcePath: filepath.Join(t.TempDir(), "missing.csv")})
	var ce *app.CommonError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, app.ErrCodeInvalidInput, ce.Code)

	_, err = Handle(ctx, &Request{
		IndexPath:  filepath.Join(t.TempDir(), "missing.idx"),
		SourcePath: StdinSource,
		Stdin:      strings.NewReader("1,1\n"),
	})
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, app.ErrCodeIndexNotFound, ce.Code)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr bool
	}{
		{"valid", Request{IndexPath: "idx", SourcePath: "in.csv"}, false},
		{"stdin", Request{IndexPath: "idx", SourcePath: StdinSource}, false},
		{"missing source", Request{IndexPath: "idx"}, true},
		{"same file", Request{IndexPath: "idx", SourcePath: "idx"}, true},
		{"negative cap", Request{IndexPath: "idx", SourcePath: "in.csv", MaxReportedErrors: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatOutput(t *testing.T) {
	var stderr bytes.Buffer
	ctx := quietContext(&stderr)
	path := newIndex(t, ctx)

	resp, err := Handle(ctx, &Request{
		IndexPath:         path,
		SourcePath:        StdinSource,
		Stdin:             strings.NewReader("x\n1,1\ny\nz\n"),
		MaxReportedErrors: 2,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FormatOutput(&buf, resp, "table"))
	out := buf.String()
	assert.Contains(t, out, "Loaded 1 records from stdin")
	assert.Contains(t, out, "Skipped 3 malformed records (showing first 2):")
	assert.Contains(t, out, `"x"`)
	assert.NotContains(t, out, `"z"`)

	buf.Reset()
	require.NoError(t, FormatOutput(&buf, resp, "json"))
	assert.Contains(t, buf.String(), `"skipped": 3`)
}
