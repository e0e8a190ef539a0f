package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: ember\ndefault_countdown_minutes: 45\n"), 0644))

	cfg := Load(path)
	assert.Equal(t, "ember", cfg.Theme)
	assert.Equal(t, 45, cfg.DefaultCountdownMinutes)
	assert.Equal(t, Default().DataDir, cfg.DataDir, "unset fields keep defaults")
}

func TestLoadBrokenYAMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0644))

	cfg := Load(path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadClampsCountdownMinutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_countdown_minutes: 0\n"), 0644))

	cfg := Load(path)
	assert.Equal(t, 25, cfg.DefaultCountdownMinutes)
}
