package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-blockidx/internal/config"
)

func withSettings(t *testing.T, cfg *config.Config) {
	t.Helper()
	previous := settings
	settings = cfg
	t.Cleanup(func() { settings = previous })
}

func TestNewContext(t *testing.T) {
	cfg := config.Default()
	cfg.SyncWrites = false
	cfg.NoColor = true
	withSettings(t, cfg)

	ctx, err := newContext()
	require.NoError(t, err)

	require.NotNil(t, ctx.Services)
	assert.True(t, ctx.Services.IsInitialized())
	assert.False(t, ctx.Services.Options().SyncWrites)
	assert.True(t, ctx.NoColor)
	assert.Equal(t, "table", ctx.OutputFormat)
}

func TestNewContextOutputFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Output = "yaml"
	withSettings(t, cfg)

	ctx, err := newContext()
	require.NoError(t, err)
	assert.Equal(t, "yaml", ctx.OutputFormat)

	cfg.Output = "xml"
	_, err = newContext()
	assert.Error(t, err)
}
