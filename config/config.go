package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config returns the value of an environment variable, loading .env first
// when present. Missing .env is fine in containerized deployments where the
// environment is injected directly.
func Config(key string) string {
	_ = godotenv.Load(".env")
	return os.Getenv(key)
}
