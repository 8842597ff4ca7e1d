package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pb33f/hareport/motor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	sel, err := cfg.Selection()
	require.NoError(t, err)
	assert.Equal(t, motor.DefaultSelection, sel)
	assert.Equal(t, 10, cfg.PageSize)
	assert.True(t, cfg.ConfirmExpensive)
	assert.Equal(t, 8, cfg.CacheEntries)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hareport", "config.yaml"), path)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("page_size: 25\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, []string{"4xx", "5xx"}, cfg.DefaultClasses)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `default_classes: [5xx, redirect]
confirm_expensive: false
cache_entries: 2
log_file: /tmp/hareport.log
log_max_backups: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"5xx", "redirect"}, cfg.DefaultClasses)
	assert.False(t, cfg.ConfirmExpensive)
	assert.Equal(t, 2, cfg.CacheEntries)
	assert.Equal(t, "/tmp/hareport.log", cfg.LogFile)
	assert.Equal(t, 0, cfg.LogMaxBackups)
	assert.Equal(t, 10, cfg.LogMaxSizeMB)

	sel, err := cfg.Selection()
	require.NoError(t, err)
	assert.Equal(t, motor.NewCodeSelection(motor.StatusRedirect, motor.StatusServerError), sel)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "page_size: [",
		"bad class":     "default_classes: [6xx]",
		"zero page":     "page_size: 0",
		"neg cache":     "cache_entries: -1",
		"zero log size": "log_max_size_mb: 0",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Equal(t, DefaultConfig(), cfg)
		})
	}
}
