// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"finledger/pkg/db"
)

// Auth modes supported by the API.
const (
	AuthModeFirebase = "firebase"
	AuthModeJWT      = "jwt"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort     string
	DB             db.Config
	AuthMode       string
	JWTSecret      string
	TrustedOrigins []string
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one exists. It returns an AppConfig instance or an error if
// any required variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost" // Default to localhost for local development
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432" // Default PostgreSQL port
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user" // Default user for local development
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password" // Default password for local development
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "finledger" // Default database name for local development
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable" // Default to disable for local development
	}

	authMode := os.Getenv("AUTH_MODE")
	if authMode == "" {
		authMode = AuthModeFirebase
	}
	if authMode != AuthModeFirebase && authMode != AuthModeJWT {
		return nil, fmt.Errorf("invalid AUTH_MODE %q, expected %q or %q", authMode, AuthModeFirebase, AuthModeJWT)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if authMode == AuthModeJWT && jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_MODE is %q", AuthModeJWT)
	}

	trustedOrigins := []string{"http://localhost:3000"}
	if v := os.Getenv("TRUSTED_ORIGINS"); v != "" {
		trustedOrigins = trustedOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				trustedOrigins = append(trustedOrigins, origin)
			}
		}
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		AuthMode:       authMode,
		JWTSecret:      jwtSecret,
		TrustedOrigins: trustedOrigins,
	}, nil
}
