package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockidx-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Output)
	assert.False(t, cfg.NoColor)
	assert.True(t, cfg.SyncWrites)
	assert.Equal(t, 20, cfg.Load.MaxReportedErrors)
	assert.False(t, cfg.Extract.Compress)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
output: json
sync_writes: false
load:
  max_reported_errors: 5
extract:
  compress: true
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.False(t, cfg.SyncWrites)
	assert.Equal(t, 5, cfg.Load.MaxReportedErrors)
	assert.True(t, cfg.Extract.Compress)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("BLOCKIDX_OUTPUT", "yaml")
	t.Setenv("BLOCKIDX_LOAD_MAX_REPORTED_ERRORS", "3")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, 3, cfg.Load.MaxReportedErrors)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "explicit file missing",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.yaml")
			},
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string {
				return writeConfig(t, "output: [unclosed\n")
			},
		},
		{
			name: "unknown output format",
			path: func(t *testing.T) string {
				return writeConfig(t, "output: xml\n")
			},
		},
		{
			name: "negative error limit",
			path: func(t *testing.T) string {
				return writeConfig(t, "load:\n  max_reported_errors: -1\n")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(viper.New(), tc.path(t))
			assert.Error(t, err)
		})
	}
}
