package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Store       StoreConfig
	Identity    IdentityConfig
	Local       LocalConfig
	Admin       AdminConfig
	LogLevel    string
}

// StoreConfig points at the hosted realtime database REST endpoint
type StoreConfig struct {
	BaseURL string
}

// IdentityConfig holds the hosted identity provider credentials
type IdentityConfig struct {
	APIKey    string
	ProjectID string
}

// LocalConfig selects the local persistent store backend. Backend is
// "file" or "redis"; Path is the directory for the file backend.
type LocalConfig struct {
	Backend   string
	Path      string
	RedisAddr string
}

type AdminConfig struct {
	KeyHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOCAL_STORE_BACKEND", "file")
	viper.SetDefault("LOCAL_STORE_PATH", ".localstore")
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
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Store: StoreConfig{
			BaseURL: getEnvOrViper("STORE_DB_URL", ""),
		},
		Identity: IdentityConfig{
			APIKey:    getEnvOrViper("IDENTITY_API_KEY", ""),
			ProjectID: getEnvOrViper("IDENTITY_PROJECT_ID", ""),
		},
		Local: LocalConfig{
			Backend:   getEnvOrViper("LOCAL_STORE_BACKEND", "file"),
			Path:      getEnvOrViper("LOCAL_STORE_PATH", ".localstore"),
			RedisAddr: getEnvOrViper("REDIS_ADDR", "localhost:6379"),
		},
		Admin: AdminConfig{
			KeyHash: getEnvOrViper("ADMIN_KEY_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Store.BaseURL == "" {
		return nil, fmt.Errorf("STORE_DB_URL is required")
	}
	if cfg.Local.Backend != "file" && cfg.Local.Backend != "redis" {
		return nil, fmt.Errorf("LOCAL_STORE_BACKEND must be file or redis, got %q", cfg.Local.Backend)
	}

	return cfg, nil
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
