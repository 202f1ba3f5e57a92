package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmo.yaml")
	content := "port: 9090\ndatabase_url: postgres://localhost/pmo\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/pmo", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmo.json")
	content := `{"port": 7070, "redis_url": "redis://localhost:6379/0"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/pmo")
	t.Setenv("REDIS_URL", "")
	t.Setenv("PORT", "8181")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "")

	cfg := FromEnv()
	assert.Equal(t, "postgres://env/pmo", cfg.DatabaseURL)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.LogFormat)
}

func TestFromEnv_InvalidPortIgnored(t *testing.T) {
	t.Setenv("PORT", "eighty")
	assert.Equal(t, 0, FromEnv().Port)
}

func TestOverlayAndDefaults(t *testing.T) {
	file := Config{Port: 9000, DatabaseURL: "postgres://file", LogFormat: "console"}
	env := Config{DatabaseURL: "postgres://env", LogLevel: "DEBUG"}

	cfg := file.Overlay(env).MergeWithDefaults()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)

	empty := Config{}.MergeWithDefaults()
	assert.Equal(t, DefaultPort, empty.Port)
	assert.Equal(t, DefaultLogLevel, empty.LogLevel)
	assert.Equal(t, DefaultLogFormat, empty.LogFormat)
}

func TestValidate(t *testing.T) {
	valid := Config{DatabaseURL: "postgres://x"}.MergeWithDefaults()
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing database url", Config{Port: 8080, LogFormat: "json"}},
		{"port too large", Config{Port: 70000, DatabaseURL: "postgres://x", LogFormat: "json"}},
		{"bad log format", Config{Port: 8080, DatabaseURL: "postgres://x", LogFormat: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
