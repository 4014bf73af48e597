package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	Port          string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// GenerationTimeout bounds a single LLM call end-to-end.
	GenerationTimeout time.Duration

	// ArtifactMaxAge is the freshness window for stored AI artifacts. An
	// artifact older than this is regenerated on next request.
	ArtifactMaxAge time.Duration

	// AutosaveDelay is the debounce quiet period for progress writes.
	AutosaveDelay time.Duration
}

func Load() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "pathfinder.db"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:              getEnv("PORT", "8080"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GenerationTimeout: time.Duration(getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
		ArtifactMaxAge:    time.Duration(getEnvAsInt("ARTIFACT_MAX_AGE_DAYS", 7)) * 24 * time.Hour,
		AutosaveDelay:     time.Duration(getEnvAsInt("AUTOSAVE_DELAY_MS", 500)) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
