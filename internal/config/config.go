// Package config provides configuration loading from environment variables
// and an optional .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Storage backends accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendLocal    = "local"
	BackendSQLite   = "sqlite"
	BackendS3       = "s3"
	BackendSupabase = "supabase"
)

// Static errors for configuration validation.
var (
	// ErrUnknownBackend is returned when STORE_BACKEND names no known backend.
	ErrUnknownBackend = errors.New("config: STORE_BACKEND must be one of memory, local, sqlite, s3, supabase")
	// ErrS3BucketRequired is returned when the s3 backend is selected without S3_BUCKET.
	ErrS3BucketRequired = errors.New("config: S3_BUCKET is required for the s3 backend")
	// ErrSupabaseRequired is returned when the supabase backend is selected
	// without SUPABASE_URL and SUPABASE_KEY.
	ErrSupabaseRequired = errors.New("config: SUPABASE_URL and SUPABASE_KEY are required for the supabase backend")
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port           int      `env:"PORT, default=8080" json:"port"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=*" json:"allowed_origins"`

	// Persistence settings
	StoreBackend string `env:"STORE_BACKEND, default=local" json:"store_backend"`
	StoreKey     string `env:"STORE_KEY, default=jobs_v1" json:"store_key"`
	DataDir      string `env:"DATA_DIR, default=/tmp/joblisting" json:"data_dir"`
	SQLitePath   string `env:"SQLITE_PATH, default=joblisting.db" json:"sqlite_path"`

	// S3 settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	S3Prefix           string `env:"S3_PREFIX" json:"s3_prefix,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Supabase settings
	SupabaseURL string `env:"SUPABASE_URL" json:"supabase_url,omitempty"`
	SupabaseKey string `env:"SUPABASE_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// LoadDotenv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set. Missing files are ignored.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig
// and validates it.
func Load() (*Config, error) {
	return load(envconfig.OsLookuper())
}

func load(lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has the settings it needs.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendLocal, BackendSQLite:
		return nil
	case BackendS3:
		if c.S3Bucket == "" {
			return ErrS3BucketRequired
		}
		return nil
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return ErrSupabaseRequired
		}
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownBackend, c.StoreBackend)
	}
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// String returns a string representation of the config with secrets left out.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, StoreBackend: %s, StoreKey: %s, DataDir: %s, SQLitePath: %s, S3Bucket: %s, S3Region: %s, S3Endpoint: %s, SupabaseURL: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.StoreBackend,
		c.StoreKey,
		c.DataDir,
		c.SQLitePath,
		c.S3Bucket,
		c.S3Region,
		c.S3Endpoint,
		c.SupabaseURL,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
