package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DataDir       string
	DatabasePath  string
	EventName     string
	EventDate     string
	EventLocation string
	HostNames     string
	CountryCode   string
	LogLevel      string
	UserID        string
}

// LoadConfig loads configuration from environment variables or defaults.
// Variables in a .env file in the working directory are loaded first but never
// override the real environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		DataDir:       dataDir,
		DatabasePath:  getEnv("DATABASE_PATH", filepath.Join(dataDir, "guests.db")),
		EventName:     getEnv("EVENT_NAME", "Our Celebration"),
		EventDate:     getEnv("EVENT_DATE", "Saturday, January 1, 2027"),
		EventLocation: getEnv("EVENT_LOCATION", "Venue TBD"),
		HostNames:     getEnv("HOST_NAMES", "The Hosts"),
		CountryCode:   getEnv("COUNTRY_CODE", "977"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		UserID:        getEnv("USER_ID", "local"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
