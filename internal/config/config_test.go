package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lite-edit.toml")
	body := `
theme = "light"
log_level = "debug"

[font]
size_px = 18

[index]
recency_cap = 50

[keymap]
"<C-p>" = "open_file_selector"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, float32(18), cfg.Font.SizePx)
	assert.Equal(t, 50, cfg.Index.RecencyCap)
	assert.Equal(t, "open_file_selector", cfg.Keymap["<C-p>"])
	// fields absent from the file keep Default()'s values.
	assert.Equal(t, uint32(0), cfg.Font.WrapCols)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
