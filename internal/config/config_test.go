package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()
	assert.Equal(t, "minio:9000", cfg.S3Endpoint)
	assert.Equal(t, "minioadmin", cfg.S3KeyID)
	assert.False(t, cfg.S3UseSSL)
	assert.Equal(t, "trino", cfg.TrinoHost)
	assert.Equal(t, "hive", cfg.TrinoCatalog)
	assert.Equal(t, "default", cfg.TrinoSchema)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("LAKE_S3_ENDPOINT", "localhost:9100")
	t.Setenv("LAKE_S3_USE_SSL", "true")
	t.Setenv("LAKE_TRINO_HOST", "localhost")
	t.Setenv("LAKE_LOG_LEVEL", "debug")

	cfg := LoadFromEnv()
	assert.Equal(t, "localhost:9100", cfg.S3Endpoint)
	assert.True(t, cfg.S3UseSSL)
	assert.Equal(t, "localhost", cfg.TrinoHost)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.level)
	}
}

func TestTrinoServerURI(t *testing.T) {
	cfg := &Config{TrinoHost: "trino", TrinoPort: "8080", TrinoUser: "trino"}
	assert.Equal(t, "http://trino@trino:8080", cfg.TrinoServerURI())
}
