package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// QuestionTimerSeconds is the per-question countdown length
	QuestionTimerSeconds int

	// ExtraTimeSeconds is how much the extra-time power-up adds
	ExtraTimeSeconds int

	AutosaveInterval  time.Duration
	IntegrityInterval time.Duration
	BackupDir         string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first if present.
func Load() *Config {
	// Missing .env is fine; real environments set variables directly
	_ = godotenv.Load()

	return &Config{
		ServerPort:           getEnv("PORT", "8080"),
		DatabaseType:         getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:         getEnv("DB_PATH", "./pawquest.db"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		QuestionTimerSeconds: getEnvInt("QUESTION_TIMER_SECONDS", 30),
		ExtraTimeSeconds:     getEnvInt("EXTRA_TIME_SECONDS", 15),
		AutosaveInterval:     getEnvDuration("AUTOSAVE_INTERVAL", 30*time.Second),
		IntegrityInterval:    getEnvDuration("INTEGRITY_INTERVAL", 10*time.Minute),
		BackupDir:            getEnv("BACKUP_DIR", "./backups"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable (e.g. "45s", "5m")
// or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
