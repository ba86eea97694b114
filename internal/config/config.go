package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort          string
	DatabaseDSN         string
	JWTSecret           string
	PollInterval        string
	OpenAIAPIKey        string
	TwitterAPIKey       string
	TwitterAPISecret    string
	TwitterAccessToken  string
	TwitterAccessSecret string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		DatabaseDSN:         getEnv("DATABASE_DSN", ":memory:"),
		JWTSecret:           getEnv("JWT_SECRET", "super-secret-key-change-me"),
		PollInterval:        getEnv("POLL_INTERVAL", "60"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		TwitterAPIKey:       getEnv("TWITTER_API_KEY", ""),
		TwitterAPISecret:    getEnv("TWITTER_API_SECRET", ""),
		TwitterAccessToken:  getEnv("TWITTER_ACCESS_TOKEN", ""),
		TwitterAccessSecret: getEnv("TWITTER_ACCESS_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
