package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JaimeStill/takeoff/pkg/database"
	"github.com/JaimeStill/takeoff/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTakeoffEnv             = "TAKEOFF_ENV"
	EnvTakeoffShutdownTimeout = "TAKEOFF_SHUTDOWN_TIMEOUT"
	EnvTakeoffVersion         = "TAKEOFF_VERSION"
)

// DatabaseEnv maps database settings to TAKEOFF_DB_* variables.
var DatabaseEnv = &database.Env{
	Host:            "TAKEOFF_DB_HOST",
	Port:            "TAKEOFF_DB_PORT",
	Name:            "TAKEOFF_DB_NAME",
	User:            "TAKEOFF_DB_USER",
	Password:        "TAKEOFF_DB_PASSWORD",
	SSLMode:         "TAKEOFF_DB_SSL_MODE",
	ApplicationName: "TAKEOFF_DB_APPLICATION_NAME",
	MaxOpenConns:    "TAKEOFF_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "TAKEOFF_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "TAKEOFF_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "TAKEOFF_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "TAKEOFF_STORAGE_CONTAINER_NAME",
	ConnectionString: "TAKEOFF_STORAGE_CONNECTION_STRING",
	ServiceURL:       "TAKEOFF_STORAGE_SERVICE_URL",
	MaxListSize:      "TAKEOFF_STORAGE_MAX_LIST_SIZE",
}

// Config is the root configuration for the Takeoff service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Resolver        ResolverConfig  `toml:"resolver"`
	Logging         LoggingConfig   `toml:"logging"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the TAKEOFF_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvTakeoffEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml from the working directory. See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom reads the base config at path (if present), applies the
// config.<TAKEOFF_ENV>.toml overlay beside it, and finalizes all values.
// Without a base file, defaults and environment variables provide all
// configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(filepath.Dir(path)); overlay != "" {
		loaded, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(loaded)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Resolver.Merge(&overlay.Resolver)
	c.Logging.Merge(&overlay.Logging)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Database.ApplicationName == "" {
		c.Database.ApplicationName = "takeoff"
	}
	if err := c.Database.Finalize(DatabaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Resolver.Finalize(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvTakeoffShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvTakeoffVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvTakeoffEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
