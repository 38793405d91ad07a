package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Timer     TimerConfig
	Favorites FavoritesConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CatalogConfig points at an optional catalog file. Empty uses the built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type            string        `mapstructure:"type"` // only "memory"
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// TimerConfig holds timer service configuration
type TimerConfig struct {
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	MaxTimers         int           `mapstructure:"max_timers"`
	AlmostDoneSeconds int           `mapstructure:"almost_done_seconds"`
}

// FavoritesConfig selects the favorites store
type FavoritesConfig struct {
	Driver       string `mapstructure:"driver"` // "sqlite" or "memory"
	DatabasePath string `mapstructure:"database_path"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // "json" or "console"
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cooktimer/")

	// Environment variable settings, e.g. COOKTIMER_SERVER_PORT
	v.SetEnvPrefix("COOKTIMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env if it exists. Variables already
// set in the environment are not overridden.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// Catalog defaults
	v.SetDefault("catalog.path", "")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Timer defaults
	v.SetDefault("timer.tick_interval", "1s")
	v.SetDefault("timer.max_timers", 10)
	v.SetDefault("timer.almost_done_seconds", 30)

	// Favorites defaults
	v.SetDefault("favorites.driver", "sqlite")
	v.SetDefault("favorites.database_path", "cooktimer.db")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set COOKTIMER_SERVER_PORT)")
	}

	if config.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive, got: %v", config.Server.ShutdownTimeout)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got: %v", config.Cache.TTL)
	}

	if config.RateLimit.PerIP <= 0 || config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit per_ip and burst must be positive")
	}

	if config.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer tick interval must be positive, got: %v", config.Timer.TickInterval)
	}

	if config.Timer.MaxTimers < 1 {
		return fmt.Errorf("timer max_timers must be at least 1, got: %d", config.Timer.MaxTimers)
	}

	if config.Timer.AlmostDoneSeconds < 1 {
		return fmt.Errorf("timer almost_done_seconds must be at least 1, got: %d", config.Timer.AlmostDoneSeconds)
	}

	switch config.Favorites.Driver {
	case "memory":
	case "sqlite":
		if config.Favorites.DatabasePath == "" {
			return fmt.Errorf("favorites database path is required when driver is 'sqlite'")
		}
	default:
		return fmt.Errorf("favorites driver must be 'sqlite' or 'memory', got: %s", config.Favorites.Driver)
	}

	if config.Log.Encoding != "json" && config.Log.Encoding != "console" {
		return fmt.Errorf("log encoding must be 'json' or 'console', got: %s", config.Log.Encoding)
	}

	return nil
}
