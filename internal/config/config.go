package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/havanahub/investors/internal/storage"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverFile     = "file"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Display DisplayConfig `yaml:"display"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	CORSOrigin string `yaml:"cors_origin"`
}

// StorageConfig selects and configures the document backend.
// Path is the database file for sqlite and the directory for file.
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	DSN           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	Key           string `yaml:"key"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig holds operator authentication settings.
// Authentication is enabled only when JWTSecret is set.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"`
	PassphraseHash string        `yaml:"passphrase_hash"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
}

// Enabled reports whether the RPC API requires a token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// DisplayConfig holds presentation settings
type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.Path == "" {
		switch c.Storage.Driver {
		case DriverSQLite:
			c.Storage.Path = "./data/havana.db"
		case DriverFile:
			c.Storage.Path = "./data"
		}
	}
	if c.Storage.Key == "" {
		c.Storage.Key = storage.DefaultKey
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Display.Currency == "" {
		c.Display.Currency = "GHS"
	}
}

// Load reads a YAML configuration file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// LoadFromEnv loads .env (if present), then the YAML file at path (defaults
// when path is empty), then applies environment overrides and validates.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("HAVANA_CONFIG")
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	setString(&c.Server.Addr, "HAVANA_ADDR")
	setString(&c.Storage.Driver, "HAVANA_STORAGE_DRIVER")
	setString(&c.Storage.Path, "DB_PATH")
	setString(&c.Storage.DSN, "HAVANA_DSN")
	setString(&c.Storage.RedisAddr, "HAVANA_REDIS_ADDR")
	setString(&c.Storage.RedisPassword, "HAVANA_REDIS_PASSWORD")
	setString(&c.Storage.Key, "HAVANA_STORAGE_KEY")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Auth.JWTSecret, "HAVANA_JWT_SECRET")
	setString(&c.Auth.PassphraseHash, "HAVANA_PASSPHRASE_HASH")
	setString(&c.Display.Currency, "HAVANA_CURRENCY")

	if v := os.Getenv("HAVANA_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HAVANA_REDIS_DB %q: %w", v, err)
		}
		c.Storage.RedisDB = db
	}
	if v := os.Getenv("HAVANA_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HAVANA_TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}

	// A driver switched by env may still need its default path.
	c.setDefaults()
	return nil
}

// Validate checks that the selected storage driver is fully configured.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverSQLite, DriverFile:
		if c.Storage.Path == "" {
			errs = append(errs, fmt.Errorf("storage.path is required for driver %q", c.Storage.Driver))
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for driver \"postgres\""))
		}
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			errs = append(errs, errors.New("storage.redis_addr is required for driver \"redis\""))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if c.Auth.Enabled() && c.Auth.PassphraseHash == "" {
		errs = append(errs, errors.New("auth.passphrase_hash is required when auth.jwt_secret is set"))
	}

	return errors.Join(errs...)
}
