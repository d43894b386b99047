package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	TwelveData TwelveDataConfig
	SnapTrade  SnapTradeConfig
	Frontend   FrontendConfig
	Auth       AuthConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// TwelveDataConfig holds the market-data provider endpoint and API key
type TwelveDataConfig struct {
	BaseURL string
	APIKey  string
}

// SnapTradeConfig holds the brokerage-aggregation provider endpoint and
// API credentials
type SnapTradeConfig struct {
	BaseURL     string
	ClientID    string
	ConsumerKey string
}

// FrontendConfig holds the SPA base URL used for OAuth callback redirects
type FrontendConfig struct {
	URL string
}

// AuthConfig holds caller-identity settings. DefaultUserID is the
// fallback identity used when the X-User-Id header is absent; SecretKey
// is the fernet key guarding stored user secrets (generated when empty).
type AuthConfig struct {
	DefaultUserID string
	SecretKey     string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:4200",
				"http://localhost",
			}),
		},
		TwelveData: TwelveDataConfig{
			BaseURL: getEnv("TWELVE_DATA_API_URL", "https://api.twelvedata.com"),
			APIKey:  getEnv("TWELVE_DATA_API_KEY", ""),
		},
		SnapTrade: SnapTradeConfig{
			BaseURL:     getEnv("SNAPTRADE_API_URL", "https://api.snaptrade.com/api/v1"),
			ClientID:    getEnv("SNAPTRADE_CLIENT_ID", ""),
			ConsumerKey: getEnv("SNAPTRADE_CONSUMER_KEY", ""),
		},
		Frontend: FrontendConfig{
			URL: getEnv("FRONTEND_URL", "http://localhost:4200"),
		},
		Auth: AuthConfig{
			DefaultUserID: getEnv("DEFAULT_USER_ID", "user123"),
			SecretKey:     getEnv("SECRET_STORE_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitEnv gets a comma-separated environment variable or returns a default list
func splitEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
