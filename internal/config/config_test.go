package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 8*time.Second, cfg.Canvas.OverflowClearAfter())
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `
[logger]
level = "debug"
format = "json"
log_file = "/tmp/boxlayout.log"

[canvas]
overflow_clear_ms = 250
artboard_width = 1024
default_child_count = -1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "/tmp/boxlayout.log", cfg.Logger.LogFile)
	assert.Equal(t, 3, cfg.Logger.MaxBackups, "unset keys keep defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Canvas.OverflowClearAfter())
	assert.Equal(t, 1024.0, cfg.Canvas.ArtboardWidth)
	assert.Equal(t, 600.0, cfg.Canvas.ArtboardHeight)
	assert.Equal(t, 3, cfg.Canvas.DefaultChildCount, "invalid values fall back")
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[logger\nlevel ="), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := DefaultConfig()
	want.Logger.Level = "warn"
	want.Canvas.ArtboardWidth = 320

	require.NoError(t, SaveConfig(path, want))
	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0644))

	got, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got, "falls back to go.mod")

	require.NoError(t, os.WriteFile(filepath.Join(root, "a", FileName), nil, 0644))
	got, err = FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a"), got, "config file wins")
}
