// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (airport reference data)
	PostgresURI string

	// Flight data source
	FlightAPIBaseURL      string
	FlightAPIClientID     string
	FlightAPIClientSecret string
	FlightAPITokenURL     string

	// Notifier
	NotifierBaseURL string
	NotifierToken   string

	// Watchlist refresh
	DefaultOwnerID  string
	RefreshInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "flighttrackers"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		FlightAPIBaseURL:      getEnv("FLIGHT_API_BASE_URL", "https://api.flight-offers.example.com"),
		FlightAPIClientID:     getEnv("FLIGHT_API_CLIENT_ID", ""),
		FlightAPIClientSecret: getEnv("FLIGHT_API_CLIENT_SECRET", ""),
		FlightAPITokenURL:     getEnv("FLIGHT_API_TOKEN_URL", ""),

		NotifierBaseURL: getEnv("NOTIFIER_BASE_URL", ""),
		NotifierToken:   getEnv("NOTIFIER_TOKEN", ""),

		DefaultOwnerID:  getEnv("DEFAULT_OWNER_ID", "default"),
		RefreshInterval: time.Duration(getEnvAsInt("REFRESH_INTERVAL_MINUTES", 360)) * time.Minute,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
