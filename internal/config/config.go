package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Ollama
	OllamaURL        string
	OllamaModel      string
	OllamaTimeoutSec int

	// Frontend
	FrontendURL string
}

// IsDevelopment reports whether the runtime mode exposes error detail
// in responses.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "development"),
		DatabaseURL:      mustGetEnv("DATABASE_URL"),
		OllamaURL:        getEnvOrDefault("OLLAMA_URL", "http://127.0.0.1:11434"),
		OllamaModel:      getEnvOrDefault("OLLAMA_MODEL", "llama3"),
		OllamaTimeoutSec: getEnvAsIntOrDefault("OLLAMA_TIMEOUT_SECONDS", 120),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:3001"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
