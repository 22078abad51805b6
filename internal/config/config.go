package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the console server.
type Config struct {
	// Identity holds the remote identity API settings.
	Identity IdentityConfig

	// Server holds HTTP server settings.
	Server ServerConfig

	// Logging holds logging-related settings.
	Logging LoggingConfig
}

// IdentityConfig points the console at a WordPress JWT-auth REST API.
type IdentityConfig struct {
	// BaseURL is the API root, e.g. "https://voltms.com/wp-json".
	BaseURL string
	// Site scopes the durable session storage; two consoles pointed at
	// different sites never share a token.
	Site string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	ListenAddr string
	// AllowedOrigin is the browser origin allowed by CORS.
	AllowedOrigin string
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables, reading .env files
// first (missing files are fine).
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	baseURL := os.Getenv("VOLT_API_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("VOLT_API_BASE_URL is required (e.g. https://voltms.com/wp-json)")
	}

	site := os.Getenv("VOLT_SITE")
	if site == "" {
		site = "default"
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:5173"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Identity: IdentityConfig{
			BaseURL: baseURL,
			Site:    site,
		},
		Server: ServerConfig{
			ListenAddr:    listenAddr,
			AllowedOrigin: allowedOrigin,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
