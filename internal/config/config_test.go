package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "classic", c.Theme)
	assert.Equal(t, "inclusive", c.ThresholdSet)
	assert.Equal(t, 50, c.SyntheticSize)
	assert.Equal(t, uint64(0), c.SyntheticSeed)
	assert.Equal(t, "plantilla_didia_ba.csv", c.TemplateFileName)
	assert.Equal(t, int64(10<<20), c.MaxUploadBytes)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	c.Theme = "plain"
	c.SyntheticSeed = 99
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".didia", "config.yaml"))
	require.NoError(t, err)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "plain", got.Theme)
	assert.Equal(t, uint64(99), got.SyntheticSeed)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "didia.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: plain\nthreshold_set: strict\n"), 0o644))
	t.Setenv("DIDIA_THRESHOLD_SET", "early-warning")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "plain", c.Theme)
	assert.Equal(t, "early-warning", c.ThresholdSet)
}

func TestExplicitMissingFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInvalidSyntheticSize(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DIDIA_SYNTHETIC_SIZE", "0")
	_, err := Load("")
	assert.ErrorContains(t, err, "synthetic_size")
}
