// Package config provides configuration management for the application.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig
	Client ClientConfig
}

// ServerConfig holds HTTP server configuration for the mock server
type ServerConfig struct {
	Port   string
	APIKey string // exact key the mock server requires; empty accepts any well-formed key
}

// ClientConfig holds OpenFiles client configuration
type ClientConfig struct {
	APIKey   string
	BaseURL  string
	BasePath string
	Timeout  time.Duration
}

// Load reads configuration from a .env file and the environment
func Load() (*Config, error) {
	// Load .env file using Viper (optional, won't fail if not found)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if .env file doesn't exist

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("OPENFILES_TIMEOUT", "30s")

	// Enable automatic environment variable reading
	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:   viper.GetString("PORT"),
			APIKey: viper.GetString("MOCK_API_KEY"),
		},
		Client: ClientConfig{
			APIKey:   viper.GetString("OPENFILES_API_KEY"),
			BaseURL:  viper.GetString("OPENFILES_BASE_URL"),
			BasePath: viper.GetString("OPENFILES_BASE_PATH"),
			Timeout:  viper.GetDuration("OPENFILES_TIMEOUT"),
		},
	}

	return cfg, nil
}
