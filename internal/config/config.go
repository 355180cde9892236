package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL  = "https://api.internationalshowtimes.com/v4"
	DefaultLanguage = "en"
)

// Config captures the client settings derived from environment variables.
type Config struct {
	APIKey      string
	Language    string
	BaseURL     string
	UserAgent   string
	TimeoutSecs int
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Load reads and validates configuration. See FromEnv.
func Load(envFiles ...string) (Config, error) {
	cfg, err := FromEnv(envFiles...)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// FromEnv reads configuration from the environment, after loading any .env
// files given (".env" when none are). Missing .env files are ignored;
// variables already set in the environment win over file values.
func FromEnv(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		APIKey:      os.Getenv("SHOWTIMES_API_KEY"),
		Language:    getEnv("SHOWTIMES_LANGUAGE", DefaultLanguage),
		BaseURL:     getEnv("SHOWTIMES_BASE_URL", DefaultBaseURL),
		UserAgent:   os.Getenv("SHOWTIMES_USER_AGENT"),
		TimeoutSecs: getEnvInt("SHOWTIMES_TIMEOUT_SECS", 0),
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("SHOWTIMES_API_KEY is required")
	}
	if c.TimeoutSecs < 0 {
		return fmt.Errorf("SHOWTIMES_TIMEOUT_SECS must be non-negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
