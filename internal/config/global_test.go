package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "tally"), GlobalConfigDir())
}

func TestGlobalConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/tally", GlobalConfigDir())
	assert.Equal(t, "/custom/config/tally/config.yaml", GlobalConfigPath())
}

func TestLoadGlobal_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadGlobal_Valid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tally"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tally", "config.yaml"), []byte("team_size: 7\n"), 0o600))

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.TeamSize)
	assert.Equal(t, 7, *cfg.TeamSize)
}

func TestLoadGlobal_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tally"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tally", "config.yaml"), []byte("team_size: [1"), 0o600))

	_, err := LoadGlobal()
	assert.Error(t, err)
}
