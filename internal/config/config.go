package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the backend base URL used when nothing else is configured
const DefaultAPIURL = "http://localhost:5000/api"

// Config holds all configuration for the application
type Config struct {
	// API client configuration (CLI)
	API APIConfig

	// Local state (session storage) configuration (CLI)
	State StateConfig

	// Development backend configuration
	Server ServerConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds the backend connection settings
type APIConfig struct {
	URL string
	// Timeout of zero means requests never time out
	Timeout time.Duration
	// URLFromEnv reports whether URL came from the environment rather than the default
	URLFromEnv bool
}

// StateConfig holds where the CLI keeps its persistent key/value storage
type StateConfig struct {
	Dir string
}

// ServerConfig holds the development backend configuration
type ServerConfig struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	CORSOrigins   []string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	apiURL := os.Getenv("RENTACAR_API_URL")
	apiURLFromEnv := apiURL != ""
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	var timeout time.Duration
	if raw := os.Getenv("RENTACAR_REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RENTACAR_REQUEST_TIMEOUT %q: %w", raw, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid RENTACAR_REQUEST_TIMEOUT %q: must not be negative", raw)
		}
		timeout = d
	}

	stateDir := os.Getenv("RENTACAR_STATE_DIR")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".config", "rentacar")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "car_rental.sqlite"
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret-key-change-in-production"
	}

	corsOrigins := []string{"http://localhost:5000", "http://127.0.0.1:5000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		corsOrigins = splitList(raw)
	}

	// Logging configuration - the CLI is quiet unless asked otherwise
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			URL:        strings.TrimRight(apiURL, "/"),
			Timeout:    timeout,
			URLFromEnv: apiURLFromEnv,
		},
		State: StateConfig{
			Dir: stateDir,
		},
		Server: ServerConfig{
			Port:          port,
			DatabaseURL:   dbURL,
			SessionSecret: sessionSecret,
			CORSOrigins:   corsOrigins,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
