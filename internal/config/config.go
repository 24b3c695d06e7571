// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the API binary needs.
type Config struct {
	Port     string
	Env      string // "development" or "production"
	MongoURI string
	MongoDB  string

	JWTSecret string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	FrontendURL string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; absent optional variables fall back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         envOr("PORT", "3000"),
		Env:          envOr("ENV", "development"),
		MongoURI:     envOr("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:      envOr("MONGODB_DB", "fintrackr"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOr("OPENAI_MODEL", "gpt-4o-mini"),
		FrontendURL:  envOr("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return cfg, nil
}

// Production reports whether the service runs in production mode. Cookie
// flags depend on it.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
