package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"menusync/internal/registry"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds process-level settings. Provider connections are declared in
// Providers() with their own env overrides.
type Config struct {
	// API Configuration
	APIHost string `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort string `envconfig:"API_PORT" default:"8080"`

	// Kafka; leave brokers empty to disable sync-event publishing
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"catalog-sync-events"`

	// Menu generation caps
	MaxPerCategory int `envconfig:"MENU_MAX_PER_CATEGORY" default:"20"`
	MaxFeatured    int `envconfig:"MENU_MAX_FEATURED" default:"10"`

	// Environment
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the optional .env file and processes environment variables.
func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}

// Providers returns the static provider connection set. Credentials and base
// URLs are overridable per provider through the environment; everything else
// is fixed for the process lifetime.
func Providers() []*registry.ProviderConnection {
	return []*registry.ProviderConnection{
		{
			ID:           "payzone",
			Name:         "PayZone",
			BaseURL:      getEnv("PAYZONE_BASE_URL", "https://api.payzone.example"),
			APIKey:       getEnv("PAYZONE_API_KEY", ""),
			APISecret:    getEnv("PAYZONE_API_SECRET", ""),
			ProductsPath: "/v1/services",
			PricingPath:  "/v1/pricing",
			Categories:   []string{"Bill Payments", "Banking Services"},
			SyncInterval: getEnvAsDuration("PAYZONE_SYNC_INTERVAL", 5*time.Minute),
			Timeout:      10 * time.Second,
			MaxRetries:   3,
			RetryDelay:   5 * time.Second,
		},
		{
			ID:           "ezivend",
			Name:         "EziVend",
			BaseURL:      getEnv("EZIVEND_BASE_URL", "https://catalog.ezivend.example"),
			APIKey:       getEnv("EZIVEND_API_KEY", ""),
			APISecret:    getEnv("EZIVEND_API_SECRET", ""),
			ProductsPath: "/api/vouchers",
			PricingPath:  "/api/pricing",
			Categories:   []string{"Vouchers", "VAS Services"},
			SyncInterval: getEnvAsDuration("EZIVEND_SYNC_INTERVAL", 10*time.Minute),
			Timeout:      10 * time.Second,
			MaxRetries:   3,
			RetryDelay:   5 * time.Second,
		},
		{
			ID:           "mobiconnect",
			Name:         "MobiConnect",
			BaseURL:      getEnv("MOBICONNECT_BASE_URL", "https://gw.mobiconnect.example"),
			APIKey:       getEnv("MOBICONNECT_API_KEY", ""),
			APISecret:    getEnv("MOBICONNECT_API_SECRET", ""),
			ProductsPath: "/catalog/products",
			PricingPath:  "/catalog/pricing",
			Categories:   []string{"Mobile Services", "VAS Services"},
			SyncInterval: getEnvAsDuration("MOBICONNECT_SYNC_INTERVAL", 15*time.Minute),
			Timeout:      10 * time.Second,
			MaxRetries:   3,
			RetryDelay:   5 * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
