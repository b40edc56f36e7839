package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/pulvis/internal/extract"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Source.Timeout = 3 * time.Second
	cfg.History.Capacity = 42
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# pulvis configuration")
	assert.Contains(t, string(data), "base_url: https://www.online-latin-dictionary.com")
	assert.Contains(t, string(data), "timeout: 3s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("source:\n  base_url: http://mirror.test\nhistory:\n  capacity: 10\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://mirror.test", cfg.Source.BaseURL)
	assert.Equal(t, "latin-english-dictionary.php", cfg.Source.EntryPath)
	assert.Equal(t, 10, cfg.History.Capacity)
	assert.Equal(t, extract.DefaultMarkers(), cfg.Markers)
}

func TestLoadRejectsUnknownMarkersVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("markers:\n  version: olp-1999\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "olp-1999")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestFromViper(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default()))

	v := viper.New()
	v.Set("config_dir", dir)
	v.Set("server.listen", ":9999")
	v.Set("explainer.enabled", true)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Listen)
	assert.True(t, cfg.Explainer.Enabled)
	assert.Equal(t, Default().Source, cfg.Source)
}
