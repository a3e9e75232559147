package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Fetch    FetchConfig
	Cache    CacheConfig
	Matching MatchingConfig
	Audit    AuditConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FetchConfig holds document retrieval configuration
type FetchConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds document cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds field matching configuration
type MatchingConfig struct {
	FuzzyThreshold     float64 `mapstructure:"fuzzy_threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// AuditConfig holds batch audit configuration
type AuditConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/regimenpro-scrape/")

	// Environment variable settings
	v.SetEnvPrefix("REGIMENPRO")
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Fetch defaults
	v.SetDefault("fetch.user_agent", "RegimenPro-Scrape/1.0")
	v.SetDefault("fetch.requests_per_second", 2.0)
	v.SetDefault("fetch.burst", 5)
	v.SetDefault("fetch.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Matching defaults
	v.SetDefault("matching.fuzzy_threshold", 0.85)
	v.SetDefault("matching.enable_debug_logging", false)

	// Audit defaults
	v.SetDefault("audit.concurrency", 4)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Matching.FuzzyThreshold <= 0 || config.Matching.FuzzyThreshold > 1 {
		return fmt.Errorf("matching fuzzy threshold must be in (0,1], got: %v", config.Matching.FuzzyThreshold)
	}

	if config.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch requests per second must be positive, got: %v", config.Fetch.RequestsPerSecond)
	}

	if config.Audit.Concurrency < 1 {
		return fmt.Errorf("audit concurrency must be at least 1, got: %d", config.Audit.Concurrency)
	}

	return nil
}
