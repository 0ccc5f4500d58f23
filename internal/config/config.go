// Package config loads ppm settings from a YAML file with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRepoURL is the raw content base of the central plugin repository.
const DefaultRepoURL = "https://raw.githubusercontent.com/mre31/ppm-poly-package-manager/master/"

// Config holds everything the engine and its adapters need to run.
type Config struct {
	RepoURL      string `yaml:"repo_url"`
	PluginsDir   string `yaml:"plugins_dir"`
	RegistryPath string `yaml:"registry_path"`
	HTTPTimeout  int    `yaml:"http_timeout_seconds"`
	RetryMax     int    `yaml:"retry_max"`
	LogLevel     string `yaml:"log_level"`
}

// Defaults returns the built-in configuration. The plugins directory is the
// host application's plugin load path, not ppm's own state directory.
func Defaults() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		RepoURL:      DefaultRepoURL,
		PluginsDir:   filepath.Join(home, "plplugins"),
		RegistryPath: filepath.Join(home, ".ppm", "registry.json"),
		HTTPTimeout:  30,
		RetryMax:     1,
		LogLevel:     "info",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ppm", "config.yaml")
}

// Load reads the config file at path, fills in defaults, and applies
// environment overrides. A missing file yields defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.RepoURL == "" {
		cfg.RepoURL = def.RepoURL
	}
	if cfg.PluginsDir == "" {
		cfg.PluginsDir = def.PluginsDir
	}
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = def.RegistryPath
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = def.HTTPTimeout
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = def.RetryMax
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PPM_REPO_URL"); v != "" {
		cfg.RepoURL = v
	}
	if v := os.Getenv("PPM_PLUGINS_DIR"); v != "" {
		cfg.PluginsDir = v
	}
	if v := os.Getenv("PPM_REGISTRY_PATH"); v != "" {
		cfg.RegistryPath = v
	}
	if v := os.Getenv("PPM_HTTP_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = n
		}
	}
	if v := os.Getenv("PPM_RETRY_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetryMax = n
		}
	}
	if v := os.Getenv("PPM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
