// Package config handles loader configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the environment-derived configuration of the loader binary.
// Job-specific settings (table, mode, post-actions) come from the job file,
// not the environment.
type Config struct {
	Driver   string // registered database/sql driver name
	DSN      string // warehouse connection string
	TempRoot string // bulk store root for export temp locations

	// Explicit bulk store credentials are optional — nil selects the
	// environment provider chain.
	KeyID  *string
	Secret *string
	Token  *string

	S3Region              string
	S3Endpoint            string // custom S3-compatible endpoint (optional)
	GCSKeyFile            string // service account key file (optional)
	AzureConnectionString string

	LogLevel string // debug, info, warn, error (default "info")
	Workers  int    // export partition parallelism (0 = default)
	Gzip     bool   // gzip export files
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

// ExplicitCredentials returns true if a full static key pair is configured.
func (c *Config) ExplicitCredentials() bool {
	return c.KeyID != nil && c.Secret != nil
}

// Validate checks that the configuration can drive a save operation.
func (c *Config) Validate() error {
	if c.Driver == "" {
		return fmt.Errorf("WAREHOUSE_DRIVER must be set")
	}
	if c.DSN == "" {
		return fmt.Errorf("WAREHOUSE_DSN must be set")
	}
	if c.TempRoot == "" {
		return fmt.Errorf("TEMP_ROOT must be set")
	}
	if (c.KeyID == nil) != (c.Secret == nil) {
		return fmt.Errorf("KEY_ID and SECRET must be set together")
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables. Credential
// variables are optional — the environment provider chain covers their
// absence.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Driver:                os.Getenv("WAREHOUSE_DRIVER"),
		DSN:                   os.Getenv("WAREHOUSE_DSN"),
		TempRoot:              os.Getenv("TEMP_ROOT"),
		S3Region:              os.Getenv("S3_REGION"),
		S3Endpoint:            os.Getenv("S3_ENDPOINT"),
		GCSKeyFile:            os.Getenv("GCS_KEY_FILE"),
		AzureConnectionString: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		LogLevel:              os.Getenv("LOG_LEVEL"),
		Gzip:                  parseBoolEnvDefault("EXPORT_GZIP", false),
	}

	// Credentials are optional — only set if present
	if v := os.Getenv("KEY_ID"); v != "" {
		cfg.KeyID = &v
	}
	if v := os.Getenv("SECRET"); v != "" {
		cfg.Secret = &v
	}
	if v := os.Getenv("TOKEN"); v != "" {
		cfg.Token = &v
	}

	if v := os.Getenv("EXPORT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid EXPORT_WORKERS %q", v)
		}
		cfg.Workers = n
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch v {
	case "0", "false", "no", "off":
		return false
	case "1", "true", "yes", "on":
		return true
	default:
		return defaultVal
	}
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Env vars take precedence over the .env file
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
