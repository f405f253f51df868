package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Domain   DomainConfig   `mapstructure:"domain"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Popup    PopupConfig    `mapstructure:"popup"`
	Sessions SessionsConfig `mapstructure:"sessions"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds the lead audit database configuration.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DomainConfig holds the subdomain routing configuration.
type DomainConfig struct {
	// BaseDomain is the registrable domain the gateway serves, e.g.
	// "example.com". Hosts like "dir.example.com" route by their subdomain.
	BaseDomain string `mapstructure:"base_domain"`
}

// UpstreamConfig holds the backend API client configuration.
type UpstreamConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RetryCount       int           `mapstructure:"retry_count"`
	RetryWaitTime    time.Duration `mapstructure:"retry_wait_time"`
	RetryMaxWaitTime time.Duration `mapstructure:"retry_max_wait_time"`
}

// RedisConfig holds the shared session store configuration. When disabled,
// sessions live in process memory only.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// CatalogConfig holds the category catalog source configuration.
type CatalogConfig struct {
	// Source is "upstream" (fetched from the backend API and cached) or
	// "file" (loaded once from a local YAML file).
	Source string `mapstructure:"source"`
	TTL    time.Duration `mapstructure:"ttl"`
	Path   string        `mapstructure:"path"`
}

// PopupConfig holds the lead popup scheduling configuration.
type PopupConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// SessionsConfig holds visitor session janitor configuration.
type SessionsConfig struct {
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
	MaxIdle       time.Duration `mapstructure:"max_idle"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("database.dsn", "./data/edgegate.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("domain.base_domain", "localhost")
	v.SetDefault("upstream.base_url", "http://localhost:9000")
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("upstream.retry_count", 2)
	v.SetDefault("upstream.retry_wait_time", "500ms")
	v.SetDefault("upstream.retry_max_wait_time", "5s")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "30m")
	v.SetDefault("catalog.source", "upstream")
	v.SetDefault("catalog.ttl", "5m")
	v.SetDefault("catalog.path", "./data/categories.yaml")
	v.SetDefault("popup.delay", "20s")
	v.SetDefault("sessions.purge_interval", "5m")
	v.SetDefault("sessions.max_idle", "30m")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("EDGEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Catalog.Source != "upstream" && cfg.Catalog.Source != "file" {
		return nil, fmt.Errorf("catalog.source must be \"upstream\" or \"file\", got %q", cfg.Catalog.Source)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
