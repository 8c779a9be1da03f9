// Package config handles application configuration and environment loading.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds the connection settings for the backing services. Every field
// carries a demo default matching the docker-compose topology, so the CLI
// runs without any configuration inside the compose network.
type Config struct {
	// Object store (MinIO / S3-compatible).
	S3Endpoint string // host:port, no scheme (default "minio:9000")
	S3KeyID    string // access key (default "minioadmin")
	S3Secret   string // secret key (default "minioadmin")
	S3Region   string // region sent to the SDK (default "us-east-1")
	S3UseSSL   bool   // default false for the demo topology

	// Query engine (Trino).
	TrinoHost    string // default "trino"
	TrinoPort    string // default "8080"
	TrinoUser    string // default "trino"
	TrinoCatalog string // default "hive"
	TrinoSchema  string // default "default"

	LogLevel string // debug, info, warn, error (default "info")
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TrinoServerURI returns the server URI for the Trino driver DSN.
func (c *Config) TrinoServerURI() string {
	return "http://" + c.TrinoUser + "@" + c.TrinoHost + ":" + c.TrinoPort
}

// LoadFromEnv loads configuration from environment variables, falling back
// to the demo defaults for anything unset.
func LoadFromEnv() *Config {
	return &Config{
		S3Endpoint:   envOr("LAKE_S3_ENDPOINT", "minio:9000"),
		S3KeyID:      envOr("LAKE_S3_KEY_ID", "minioadmin"),
		S3Secret:     envOr("LAKE_S3_SECRET", "minioadmin"),
		S3Region:     envOr("LAKE_S3_REGION", "us-east-1"),
		S3UseSSL:     envOr("LAKE_S3_USE_SSL", "false") == "true",
		TrinoHost:    envOr("LAKE_TRINO_HOST", "trino"),
		TrinoPort:    envOr("LAKE_TRINO_PORT", "8080"),
		TrinoUser:    envOr("LAKE_TRINO_USER", "trino"),
		TrinoCatalog: envOr("LAKE_TRINO_CATALOG", "hive"),
		TrinoSchema:  envOr("LAKE_TRINO_SCHEMA", "default"),
		LogLevel:     envOr("LAKE_LOG_LEVEL", "info"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
