// Package config handles loading and saving user configuration for pulvis.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/pulvis/internal/extract"
	"github.com/f3rmion/pulvis/internal/history"
	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/source"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration for pulvis.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Markers   extract.Markers `yaml:"markers"`
	Explainer ExplainerConfig `yaml:"explainer"`
	History   HistoryConfig   `yaml:"history"`
	Server    ServerConfig    `yaml:"server"`
}

// SourceConfig describes the lexical site and how politely to fetch from it.
type SourceConfig struct {
	latin.Endpoints   `yaml:",inline"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 disables limiting
	Burst             int           `yaml:"burst"`
}

// Options converts the fetch settings for source.NewHTTPSource.
func (s SourceConfig) Options() source.Options {
	return source.Options{
		UserAgent:         s.UserAgent,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
		Burst:             s.Burst,
	}
}

// ExplainerConfig holds settings for LLM explanations.
type ExplainerConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	APIKeyEnv string `yaml:"api_key_env"` // e.g., "ANTHROPIC_API_KEY"
}

// HistoryConfig holds session history settings.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// ServerConfig holds settings of the JSON API.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Endpoints:         latin.DefaultEndpoints(),
			UserAgent:         source.DefaultUserAgent,
			Timeout:           source.DefaultTimeout,
			RequestsPerSecond: 2,
			Burst:             3,
		},
		Markers: extract.DefaultMarkers(),
		Explainer: ExplainerConfig{
			Enabled:   false,
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 2048,
			APIKeyEnv: "ANTHROPIC_API_KEY",
		},
		History: HistoryConfig{Capacity: history.DefaultCapacity},
		Server:  ServerConfig{Listen: "127.0.0.1:8080"},
	}
}

// Load loads configuration from a YAML file. Keys missing from the file keep
// their defaults and a missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Markers.Version != extract.MarkersVersion {
		return nil, fmt.Errorf("config markers version %q does not match supported %q", cfg.Markers.Version, extract.MarkersVersion)
	}
	return cfg, nil
}

// FromViper loads the config file of the configured directory and applies
// flag and PULVIS_* environment overrides bound in v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg, err := Load(filepath.Join(v.GetString("config_dir"), FileName))
	if err != nil {
		return nil, err
	}
	if v.IsSet("source.base_url") {
		cfg.Source.BaseURL = v.GetString("source.base_url")
	}
	if v.IsSet("explainer.enabled") {
		cfg.Explainer.Enabled = v.GetBool("explainer.enabled")
	}
	if v.IsSet("history.capacity") {
		cfg.History.Capacity = v.GetInt("history.capacity")
	}
	if v.IsSet("server.listen") {
		cfg.Server.Listen = v.GetString("server.listen")
	}
	return cfg, nil
}

const fileHeader = `# pulvis configuration
#
# source:    URL shapes of the lexical site and fetch politeness
# markers:   CSS classes the page parser depends on (versioned contract)
# explainer: optional LLM explanations, key read from api_key_env
# history:   interactive session history size
# server:    listen address of 'pulvis serve'

`

// Save saves configuration to a YAML file.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(fileHeader), out...), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pulvis"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
