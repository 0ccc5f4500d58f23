package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	def := Defaults()
	assert.Equal(t, def.RepoURL, cfg.RepoURL)
	assert.Equal(t, def.RegistryPath, cfg.RegistryPath)
	assert.Equal(t, 30, cfg.HTTPTimeout)
	assert.Equal(t, 1, cfg.RetryMax)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `repo_url: "http://localhost:9999/repo/"
plugins_dir: "/tmp/plugins"
http_timeout_seconds: 5
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/repo/", cfg.RepoURL)
	assert.Equal(t, "/tmp/plugins", cfg.PluginsDir)
	assert.Equal(t, 5, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults.
	assert.Equal(t, Defaults().RegistryPath, cfg.RegistryPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repo_url: \"http://from-file/\"\n"), 0o644))

	t.Setenv("PPM_REPO_URL", "http://from-env/")
	t.Setenv("PPM_HTTP_TIMEOUT", "7")
	t.Setenv("PPM_RETRY_MAX", "0")
	t.Setenv("PPM_LOG_LEVEL", "silent")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env/", cfg.RepoURL)
	assert.Equal(t, 7, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.RetryMax)
	assert.Equal(t, "silent", cfg.LogLevel)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repo_url: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidEnvNumbersIgnored(t *testing.T) {
	t.Setenv("PPM_HTTP_TIMEOUT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, Defaults().HTTPTimeout, cfg.HTTPTimeout)
}
