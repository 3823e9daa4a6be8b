package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/productagent/backend/internal/infrastructure/provider"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Bulk      BulkConfig
	Cache     CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	APIKey          string        `mapstructure:"api_key"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// ProvidersConfig holds the fallback chain configuration. Order is the fixed
// priority in which providers are tried; a provider whose credentials are
// missing is skipped, not an error.
type ProvidersConfig struct {
	Order      []string         `mapstructure:"order"`
	Timeout    time.Duration    `mapstructure:"timeout"`
	Rainforest RainforestConfig `mapstructure:"rainforest"`
	ScraperAPI ScraperAPIConfig `mapstructure:"scraperapi"`
	RapidAPI   RapidAPIConfig   `mapstructure:"rapidapi"`
}

// RainforestConfig holds Rainforest API credentials and endpoint
type RainforestConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ScraperAPIConfig holds ScraperAPI credentials and endpoint
type ScraperAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// RapidAPIConfig holds RapidAPI credentials and endpoint
type RapidAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Host    string `mapstructure:"host"`
	BaseURL string `mapstructure:"base_url"`
}

// BulkConfig holds bulk processing configuration
type BulkConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/productagent/")

	// Environment variable settings
	v.SetEnvPrefix("PRODUCTAGENT")
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
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 10)
	v.SetDefault("server.rate_limit_window", "60s")

	// Provider defaults
	v.SetDefault("providers.order", []string{
		provider.NameRainforest,
		provider.NameScraperAPI,
		provider.NameRapidAPI,
	})
	v.SetDefault("providers.timeout", "30s")
	v.SetDefault("providers.rainforest.base_url", "https://api.rainforestapi.com")
	v.SetDefault("providers.scraperapi.base_url", "https://api.scraperapi.com")
	v.SetDefault("providers.rapidapi.host", "amazon-product-reviews-keywords.p.rapidapi.com")
	v.SetDefault("providers.rapidapi.base_url", "")

	// Secret keys default to empty so viper registers them; without a known
	// key, AutomaticEnv values are invisible to Unmarshal.
	v.SetDefault("server.api_key", "")
	v.SetDefault("providers.rainforest.api_key", "")
	v.SetDefault("providers.scraperapi.api_key", "")
	v.SetDefault("providers.rapidapi.api_key", "")

	// Bulk defaults
	v.SetDefault("bulk.concurrency", 5)
	v.SetDefault("bulk.min_interval", "500ms")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")
}

// knownProviders is the set of valid providers.order entries.
var knownProviders = map[string]bool{
	provider.NameRainforest: true,
	provider.NameScraperAPI: true,
	provider.NameRapidAPI:   true,
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.APIKey == "" {
		return fmt.Errorf("server API key is required (set PRODUCTAGENT_SERVER_API_KEY)")
	}

	if config.Providers.Rainforest.APIKey == "" &&
		config.Providers.ScraperAPI.APIKey == "" &&
		config.Providers.RapidAPI.APIKey == "" {
		return fmt.Errorf("at least one provider API key is required")
	}

	if len(config.Providers.Order) == 0 {
		return fmt.Errorf("providers.order must not be empty")
	}
	for _, name := range config.Providers.Order {
		if !knownProviders[name] {
			return fmt.Errorf("unknown provider %q in providers.order", name)
		}
	}

	if config.Bulk.Concurrency <= 0 {
		return fmt.Errorf("bulk.concurrency must be positive, got: %d", config.Bulk.Concurrency)
	}

	if config.Bulk.MinInterval < 0 {
		return fmt.Errorf("bulk.min_interval must not be negative, got: %s", config.Bulk.MinInterval)
	}

	return nil
}
