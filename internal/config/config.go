package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath    string
	MFAPIBaseURL    string
	LogLevel        string
	Port            int
	DevMode         bool
	CatalogCacheTTL time.Duration
	SchemeCacheTTL  time.Duration
	CacheCapacity   int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("FUNDSCOPE_PORT", 8080),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		DatabasePath:    getEnv("DATABASE_PATH", "./data/fundscope.db"),
		MFAPIBaseURL:    getEnv("MFAPI_BASE_URL", "https://api.mfapi.in"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 12*time.Hour),
		SchemeCacheTTL:  getEnvAsDuration("SCHEME_CACHE_TTL", 12*time.Hour),
		CacheCapacity:   getEnvAsInt("CACHE_CAPACITY", 2000),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.MFAPIBaseURL == "" {
		return fmt.Errorf("MFAPI_BASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("FUNDSCOPE_PORT must be between 1 and 65535")
	}
	if c.CatalogCacheTTL <= 0 || c.SchemeCacheTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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
