// Package config loads the server configuration for the optirail CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/optirail/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultMaxBodyBytes bounds HTTP request bodies (1 MiB).
const DefaultMaxBodyBytes int64 = 1 << 20

// Config is the serve-time configuration. Zero fields fall back to Default.
type Config struct {
	Port         int           `yaml:"port"`
	LogLevel     string        `yaml:"log_level"`
	LogJSON      bool          `yaml:"log_json"`
	CatalogPath  string        `yaml:"catalog"`
	Limits       domain.Limits `yaml:"limits"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	Metrics      *bool         `yaml:"metrics"`
	Redis        Redis         `yaml:"redis"`
}

// Redis configures the workspace store. An empty Addr selects the in-memory store.
type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	metrics := true
	return Config{
		Port:         8080,
		LogLevel:     "info",
		Limits:       domain.DefaultLimits,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Metrics:      &metrics,
	}
}

// MetricsEnabled reports whether /metrics should be mounted.
func (c Config) MetricsEnabled() bool {
	return c.Metrics == nil || *c.Metrics
}

// Decode reads YAML from r over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fill()
	return cfg, cfg.Validate()
}

// Load reads the YAML file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// fill restores defaults for fields the file zeroed out.
func (c *Config) fill() {
	def := Default()
	if c.Port == 0 {
		c.Port = def.Port
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Limits.MaxComponents == 0 {
		c.Limits.MaxComponents = def.Limits.MaxComponents
	}
	if c.Limits.MaxRays == 0 {
		c.Limits.MaxRays = def.Limits.MaxRays
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = def.MaxBodyBytes
	}
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Limits.MaxComponents < 0 || c.Limits.MaxRays < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must not be negative")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis ttl must not be negative")
	}
	return nil
}
