package create

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-blockidx/pkg/app"
)

func TestHandle(t *testing.T) {
	ctx := app.NewContext()
	path := filepath.Join(t.TempDir(), "new.idx")

	resp, err := Handle(ctx, &Request{IndexPath: path})
	require.NoError(t, err)
	assert.Equal(t, path, resp.Index.Path)
	assert.True(t, resp.Index.Empty)
	assert.FileExists(t, path)

	_, err = Handle(ctx, &Request{IndexPath: path})
	var ce *app.CommonError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, app.ErrCodeAlreadyExists, ce.Code)
}

func TestHandleLeavesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))

	_, err := Handle(app.NewContext(), &Request{IndexPath: path})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestValidate(t *testing.T) {
	err := (&Request{}).Validate()
	var ce *app.CommonError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, app.ErrCodeInvalidInput, ce.Code)
}

func TestFormatOutput(t *testing.T) {
	resp := &Response{}
	resp.Index.Path = "idx"
	resp.Index.NextFreeID = 1

	tests := []struct {
		format   string
		wantErr  bool
		contains string
	}{
		{"table", false, "Index file 'idx' created."},
		{"json", false, `"next_free_id": 1`},
		{"yaml", false, "next_free_id: 1"},
		{"xml", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, resp, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}
