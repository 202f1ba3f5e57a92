// Package config provides configuration loading and validation for the PMO Network API.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values applied by MergeWithDefaults.
const (
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Config is the server configuration. It can be loaded from a YAML (or JSON) file,
// then overlaid with environment variables and CLI flags.
type Config struct {
	Port        int    `yaml:"port,omitempty"`
	DatabaseURL string `yaml:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `yaml:"redis_url,omitempty"`    // optional, enables event publishing
	LogLevel    string `yaml:"log_level,omitempty"`    // trace, debug, info, warn, error
	LogFormat   string `yaml:"log_format,omitempty"`   // json or console
}

// LoadConfig loads configuration from a YAML file.
// JSON files are accepted as well since JSON is valid YAML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave fields empty
// so the result can be merged over a file config.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Overlay returns a copy of c with every non-empty field of o applied on top.
func (c Config) Overlay(o Config) Config {
	result := c
	if o.Port != 0 {
		result.Port = o.Port
	}
	if o.DatabaseURL != "" {
		result.DatabaseURL = o.DatabaseURL
	}
	if o.RedisURL != "" {
		result.RedisURL = o.RedisURL
	}
	if o.LogLevel != "" {
		result.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		result.LogFormat = o.LogFormat
	}
	return result
}

// MergeWithDefaults returns a new Config with empty fields filled from the package defaults.
func (c Config) MergeWithDefaults() Config {
	result := c
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.LogLevel == "" {
		result.LogLevel = DefaultLogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = DefaultLogFormat
	}
	result.LogLevel = strings.ToLower(result.LogLevel)
	result.LogFormat = strings.ToLower(result.LogFormat)
	return result
}

// Validate checks that the configuration has valid values.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' (or DATABASE_URL) is required")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}
	return nil
}
