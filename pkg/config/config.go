// Package config loads the archiver configuration and resolves the
// first-page API URL.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the fixed relative path the archiver reads its
// configuration from when no override is given.
const DefaultPath = "config/api.yaml"

// Common errors returned by the config package.
var (
	// ErrMissing is returned when the configuration file does not exist.
	ErrMissing = errors.New("configuration file missing")

	// ErrKeyMissing is returned when the api_url key is absent from the
	// api section.
	ErrKeyMissing = errors.New("missing api_url in api section")
)

// Config holds the archiver configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Archive ArchiveConfig `yaml:"archive"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig holds the upstream API settings.
type APIConfig struct {
	// APIURL is the base URL of the paginated endpoint. It must already
	// end with the limit delimiter (e.g. "https://example.com/items/?limit=")
	// because the numeric limit is concatenated onto it literally.
	APIURL string `yaml:"api_url"`
}

// ArchiveConfig holds output settings.
type ArchiveConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Pretty bool   `yaml:"pretty"`
}

// MetricsConfig holds the optional Prometheus listener settings.
type MetricsConfig struct {
	// Addr is the listen address for /metrics (e.g. ":9090").
	// Empty disables the listener.
	Addr string `yaml:"addr"`
}

// Load reads the configuration file at path. A missing file is reported
// as ErrMissing; the configuration is otherwise read-only for the process
// lifetime.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// FirstPageURL returns the configured base URL with limit appended as a
// literal numeric suffix. No query-string encoding is applied: the
// configured value carries its own trailing delimiter.
func (c *Config) FirstPageURL(limit int) (string, error) {
	if c.API.APIURL == "" {
		return "", ErrKeyMissing
	}
	return fmt.Sprintf("%s%d", c.API.APIURL, limit), nil
}

func (c *Config) setDefaults() {
	if c.Archive.Dir == "" {
		c.Archive.Dir = "data"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "logs/app.log"
	}
}
