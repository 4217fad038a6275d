package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Backend     BackendConfig
	Storage     StorageConfig
	LogLevel    string
}

type BackendConfig struct {
	BaseURL string
}

type StorageConfig struct {
	// StateDir holds the durable client-side state (cart, token).
	StateDir string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("API_BASE_URL", "http://localhost:4000")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "3000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Backend: BackendConfig{
			BaseURL: getEnvOrViper("API_BASE_URL", "http://localhost:4000"),
		},
		Storage: StorageConfig{
			StateDir: getEnvOrViper("STATE_DIR", defaultStateDir()),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.Storage.StateDir == "" {
		return nil, fmt.Errorf("STATE_DIR is required")
	}

	return cfg, nil
}

func defaultStateDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".storefront")
	}
	return ".storefront"
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
