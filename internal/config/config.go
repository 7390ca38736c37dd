// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	YouTube YouTubeConfig
	Auth    AuthConfig
	Logging LoggingConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// YouTubeConfig contains YouTube Data API client configuration.
type YouTubeConfig struct {
	// APIKey is required; the server refuses to start without it.
	APIKey    string
	BaseURL   string
	PageSize  int
	PageDelay time.Duration
}

// AuthConfig contains API authentication configuration.
type AuthConfig struct {
	// APIKeys is the list of accepted client keys. Empty means the
	// protected endpoints reject every request.
	APIKeys []string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables. The
// YouTube API key must be present; its absence is a load-time error, not
// something surfaced at request time.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.YouTube.APIKey == "" {
		return nil, fmt.Errorf("youtube.apikey is required (APP_YOUTUBE_APIKEY)")
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// YouTube API
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.baseurl", "https://www.googleapis.com/youtube/v3")
	viper.SetDefault("youtube.pagesize", 100)
	viper.SetDefault("youtube.pagedelay", 100*time.Millisecond)

	// Auth
	viper.SetDefault("auth.apikeys", []string{})

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
