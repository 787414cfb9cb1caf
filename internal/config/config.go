// Package config resolves runtime settings from environment variables
// with sane local-dev defaults, no config-file library required.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	ScriptsDir   string
	StoreType    string // "postgresql" or "mock"
	DBConnString string
	GeminiAPIKey string
	MaxSteps     int
	Addr         string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment, applying local-dev
// defaults for anything unset.
func Load() Config {
	maxSteps := 1000
	if v := os.Getenv("BOTDSL_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxSteps = n
		}
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	return Config{
		ScriptsDir:   getEnv("BOTDSL_SCRIPTS_DIR", "examples"),
		StoreType:    getEnv("BOTDSL_STORE", "postgresql"),
		DBConnString: getEnv("BOTDSL_DB_CONN", "postgres://localhost:5432/botdsl?sslmode=disable"),
		GeminiAPIKey: apiKey,
		MaxSteps:     maxSteps,
		Addr:         getEnv("BOTDSL_ADDR", ":8181"),
	}
}

func (c Config) IsMockStore() bool {
	return c.StoreType == "mock"
}
