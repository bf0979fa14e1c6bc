// Package config loads application configuration from flags, environment
// variables, and an optional .env file, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Media    MediaConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Log      LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins []string
}

// DatabaseConfig controls the SQLite database.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string
}

// MediaConfig controls image blob storage.
type MediaConfig struct {
	// Path is the directory holding the image blob database.
	Path string
}

// AuthConfig controls tokens and login rate limiting.
type AuthConfig struct {
	// DataPath is the directory where the token key is stored.
	DataPath             string
	AccessTokenKey       []byte
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	// LoginRatePerMinute limits auth attempts per client IP.
	LoginRatePerMinute int
	LoginBurst         int
}

// CatalogConfig controls fixture loading for tags, units, and ingredients.
type CatalogConfig struct {
	// ImportDir is watched for fixture files when Watch is enabled.
	ImportDir string
	Watch     bool
}

// LogConfig controls logging output.
type LogConfig struct {
	Level       string
	Format      string
	Environment string
}

// Load builds the configuration from flags, environment, and .env file.
func Load() (*Config, error) {
	loadDotEnv(".env")

	fs := flag.NewFlagSet("foodgram", flag.ContinueOnError)

	host := fs.String("host", "", "server bind host")
	port := fs.String("port", "", "server port")
	dbPath := fs.String("db", "", "sqlite database path")
	mediaPath := fs.String("media", "", "image storage directory")
	dataPath := fs.String("data", "", "application data directory")
	importDir := fs.String("import-dir", "", "catalog fixture import directory")
	watch := fs.String("watch-imports", "", "watch import directory for fixtures (true/false)")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "log format (json, pretty)")
	environment := fs.String("env", "", "environment (development, production)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	dataDir := expandPath(getConfigValue(*dataPath, "FOODGRAM_DATA", "./data"))

	cfg := &Config{
		Server: ServerConfig{
			Host:         getConfigValue(*host, "FOODGRAM_HOST", "0.0.0.0"),
			Port:         getConfigValue(*port, "FOODGRAM_PORT", "8080"),
			ReadTimeout:  getDurationValue("FOODGRAM_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationValue("FOODGRAM_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationValue("FOODGRAM_IDLE_TIMEOUT", 120*time.Second),
			CORSOrigins:  splitList(getConfigValue("", "FOODGRAM_CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Path: expandPath(getConfigValue(*dbPath, "FOODGRAM_DB", filepath.Join(dataDir, "foodgram.db"))),
		},
		Media: MediaConfig{
			Path: expandPath(getConfigValue(*mediaPath, "FOODGRAM_MEDIA", filepath.Join(dataDir, "media"))),
		},
		Auth: AuthConfig{
			DataPath:             dataDir,
			AccessTokenDuration:  getDurationValue("FOODGRAM_ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: getDurationValue("FOODGRAM_REFRESH_TOKEN_DURATION", 30*24*time.Hour),
			LoginRatePerMinute:   getIntValue("FOODGRAM_LOGIN_RATE", 20),
			LoginBurst:           getIntValue("FOODGRAM_LOGIN_BURST", 10),
		},
		Catalog: CatalogConfig{
			ImportDir: expandPath(getConfigValue(*importDir, "FOODGRAM_IMPORT_DIR", filepath.Join(dataDir, "import"))),
			Watch:     getBoolValue(*watch, "FOODGRAM_WATCH_IMPORTS", false),
		},
		Log: LogConfig{
			Level:       getConfigValue(*logLevel, "FOODGRAM_LOG_LEVEL", "info"),
			Format:      getConfigValue(*logFormat, "FOODGRAM_LOG_FORMAT", ""),
			Environment: getConfigValue(*environment, "FOODGRAM_ENV", "production"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port %q", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Auth.AccessTokenDuration <= 0 {
		return fmt.Errorf("access token duration must be positive")
	}
	if c.Auth.RefreshTokenDuration <= c.Auth.AccessTokenDuration {
		return fmt.Errorf("refresh token duration must exceed access token duration")
	}
	if c.Auth.LoginRatePerMinute <= 0 || c.Auth.LoginBurst <= 0 {
		return fmt.Errorf("login rate limits must be positive")
	}
	return nil
}

// getConfigValue returns the first non-empty of: flag value, env var, default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

func getDurationValue(envKey string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(envKey); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntValue(envKey string, defaultValue int) int {
	if v := os.Getenv(envKey); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolValue(flagValue, envKey string, defaultValue bool) bool {
	v := flagValue
	if v == "" {
		v = os.Getenv(envKey)
	}
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

// splitList splits a comma-separated value, trimming whitespace.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands a leading ~ to the user home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// loadDotEnv reads KEY=VALUE pairs from a file into the environment.
// Existing environment variables are not overridden.
func loadDotEnv(path string) {
	data, err := os.ReadFile(path) //#nosec G304 -- fixed relative path
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key == "" || os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, value)
	}
}
