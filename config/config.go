package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Search    SearchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds the relational store configuration
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// CacheConfig holds the read-through response cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // requests per second
	Burst int     `mapstructure:"burst"`
}

// SearchConfig holds search and fuzzy matching tuning
type SearchConfig struct {
	ScoreThreshold     int  `mapstructure:"score_threshold"`
	FuzzyLimit         int  `mapstructure:"fuzzy_limit"`
	MaxCandidates      int  `mapstructure:"max_candidates"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/promoprecio/")

	// Environment variable settings
	v.SetEnvPrefix("PROMOPRECIO")
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database defaults
	v.SetDefault("database.url", "postgres://localhost:5432/promoprecio")
	v.SetDefault("database.max_conns", 10)

	// Cache defaults
	v.SetDefault("cache.ttl", "60s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 20)
	v.SetDefault("ratelimit.burst", 40)

	// Search defaults
	v.SetDefault("search.score_threshold", 60)
	v.SetDefault("search.fuzzy_limit", 5)
	v.SetDefault("search.max_candidates", 5000)
	v.SetDefault("search.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.URL == "" {
		return fmt.Errorf("database URL is required (set PROMOPRECIO_DATABASE_URL)")
	}

	if config.Search.ScoreThreshold < 0 || config.Search.ScoreThreshold > 100 {
		return fmt.Errorf("search score threshold must be between 0 and 100, got: %d", config.Search.ScoreThreshold)
	}

	if config.Search.FuzzyLimit <= 0 {
		return fmt.Errorf("search fuzzy limit must be positive, got: %d", config.Search.FuzzyLimit)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %f", config.RateLimit.PerIP)
	}

	return nil
}
