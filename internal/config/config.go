package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const maxImportConcurrency = 10

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Import   ImportConfig   `toml:"import"`
	Log      LogConfig      `toml:"log"`
}

type ServerConfig struct {
	Port                   string   `toml:"port"`
	CORSOrigins            []string `toml:"cors_origins"`
	BodyLimit              string   `toml:"body_limit"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
}

type DatabaseConfig struct {
	URL          string `toml:"url"`
	EnsureSchema bool   `toml:"ensure_schema"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
	FunctionsKey    string `toml:"functions_key"`
}

type ImportConfig struct {
	BatchSize   int    `toml:"batch_size"`
	MaxRows     int    `toml:"max_rows"`
	Concurrency int    `toml:"concurrency"`
	BaseDir     string `toml:"base_dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required to serve the portal")
)

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   "8080",
			CORSOrigins:            []string{"*"},
			BodyLimit:              "10M",
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{EnsureSchema: true},
		Auth:     AuthConfig{SessionTTLHours: 24},
		Import: ImportConfig{
			BatchSize:   500,
			MaxRows:     10000,
			Concurrency: 1,
			BaseDir:     ".",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load layers configuration: defaults, then the TOML file at path (or CONFIG_FILE),
// then the environment. A .env file in the working directory is read first and
// never overrides variables that are already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = splitList(origins)
	}

	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.SessionTTLHours = parseIntEnv("SESSION_TTL_HOURS", cfg.Auth.SessionTTLHours)
	cfg.Auth.FunctionsKey = getEnv("FUNCTIONS_KEY", cfg.Auth.FunctionsKey)

	cfg.Import.BatchSize = parseIntEnv("IMPORT_BATCH_SIZE", cfg.Import.BatchSize)
	cfg.Import.MaxRows = parseIntEnv("IMPORT_MAX_ROWS", cfg.Import.MaxRows)
	cfg.Import.Concurrency = parseIntEnv("IMPORT_CONCURRENCY", cfg.Import.Concurrency)
	cfg.Import.BaseDir = getEnv("IMPORT_BASE_DIR", cfg.Import.BaseDir)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
}

func (c *Config) normalize() {
	d := Default()
	if c.Server.Port == "" {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = d.Server.ShutdownTimeoutSeconds
	}
	if c.Server.BodyLimit == "" {
		c.Server.BodyLimit = d.Server.BodyLimit
	}
	if c.Auth.SessionTTLHours <= 0 {
		c.Auth.SessionTTLHours = d.Auth.SessionTTLHours
	}
	if c.Import.BatchSize <= 0 {
		c.Import.BatchSize = d.Import.BatchSize
	}
	if c.Import.MaxRows <= 0 {
		c.Import.MaxRows = d.Import.MaxRows
	}
	if c.Import.Concurrency <= 0 {
		c.Import.Concurrency = 1
	}
	if c.Import.Concurrency > maxImportConcurrency {
		c.Import.Concurrency = maxImportConcurrency
	}
}

func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

func (c *Config) RequireServe() error {
	if err := c.RequireDatabase(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
