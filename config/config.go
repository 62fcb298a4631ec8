package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env unless GO_ENV says we are running
// in a deployed environment that injects them directly.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

// EnvironmentVariable holds the process configuration.
type EnvironmentVariable struct {
	GO_ENV       string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	// Redis (login brute-force protection)
	REDIS_URL string
	// CORS
	ALLOWED_ORIGINS string
}

// Get reads the environment into an EnvironmentVariable with sane
// development defaults.
func Get() (*EnvironmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8000
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:          os.Getenv("GO_ENV"),
		DB_USER_NAME:    os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:     os.Getenv("DB_PASSWORD"),
		DB_NAME:         os.Getenv("DB_NAME"),
		DB_HOST:         dbHost,
		DB_PORT:         dbPort,
		DB_SSL_MODE:     os.Getenv("DB_SSL_MODE"),
		PORT:            port,
		REDIS_URL:       os.Getenv("REDIS_URL"),
		ALLOWED_ORIGINS: origins,
	}

	return envVariables, nil
}
