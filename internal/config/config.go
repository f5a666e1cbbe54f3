package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/fetcher"
)

// Config holds all configuration for the airdrop checker.
type Config struct {
	// Input files
	AddressesPath string `mapstructure:"addresses_path"`
	ProxiesPath   string `mapstructure:"proxies_path"`

	// Upstream endpoint (configurable for testing)
	BaseURL string `mapstructure:"base_url"`

	// Retry policy
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`

	// HTTPTimeout bounds each individual request. Zero falls back to
	// the transport default.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// Concurrency bounds in-flight fetches. Zero means one goroutine
	// per address with no cap.
	Concurrency int `mapstructure:"concurrency"`

	// RequestRate limits dispatches per second. Zero means unlimited.
	RequestRate float64 `mapstructure:"request_rate"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables (KILOEX_ prefix) take precedence
// over config file values, which take precedence over defaults.
//
// Expected environment variables:
//   - KILOEX_ADDRESSES_PATH (optional, defaults to data/addresses.txt)
//   - KILOEX_PROXIES_PATH (optional, defaults to data/proxies.txt)
//   - KILOEX_BASE_URL (optional, defaults to production)
//   - KILOEX_MAX_RETRIES, KILOEX_RETRY_DELAY, KILOEX_HTTP_TIMEOUT
//   - KILOEX_CONCURRENCY, KILOEX_REQUEST_RATE
//   - KILOEX_LOG_LEVEL, KILOEX_LOG_FILE
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("KILOEX")
	v.AutomaticEnv()

	v.SetDefault("addresses_path", "data/addresses.txt")
	v.SetDefault("proxies_path", "data/proxies.txt")
	v.SetDefault("base_url", "https://opapi.kiloex.io")
	v.SetDefault("max_retries", fetcher.DefaultMaxRetries)
	v.SetDefault("retry_delay", fetcher.DefaultRetryDelay)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("concurrency", 0)
	v.SetDefault("request_rate", 0.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.kiloex-airdrop-checker")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.MaxRetries < 0 {
		return nil, fmt.Errorf("max_retries must not be negative, got %d", config.MaxRetries)
	}
	if config.RetryDelay < 0 {
		return nil, fmt.Errorf("retry_delay must not be negative, got %v", config.RetryDelay)
	}

	return config, nil
}
