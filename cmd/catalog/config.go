package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sternrassler/catalog-client/pkg/cache"
	"github.com/Sternrassler/catalog-client/pkg/client"
	"github.com/Sternrassler/catalog-client/pkg/logging"
)

const defaultUserAgent = "catalog-client/0.1.0"

// config is the process configuration, read from the environment and
// overridden by flags.
type config struct {
	BaseURL     string
	UserAgent   string
	RedisURL    string
	LogLevel    logging.LogLevel
	LogPretty   bool
	Port        string
	CacheMaxAge time.Duration
}

// loadDotEnv loads path into the environment. Variables with a non-empty
// value win over the file; empty ones count as unset, as in getEnv. A
// missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	for key, value := range vars {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

func loadConfig() (config, error) {
	level, err := logging.ParseLogLevel(getEnv("LOG_LEVEL", string(logging.LevelInfo)))
	if err != nil {
		return config{}, err
	}
	pretty, err := getEnvBool("LOG_PRETTY", false)
	if err != nil {
		return config{}, err
	}
	maxAge, err := getEnvDuration("CATALOG_CACHE_MAX_AGE", cache.DefaultMaxAge)
	if err != nil {
		return config{}, err
	}

	return config{
		BaseURL:     getEnv("CATALOG_BASE_URL", client.DefaultBaseURL),
		UserAgent:   getEnv("CATALOG_USER_AGENT", defaultUserAgent),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    level,
		LogPretty:   pretty,
		Port:        getEnv("PORT", "8080"),
		CacheMaxAge: maxAge,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// getEnvDuration accepts Go durations ("90s") and plain seconds ("90").
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
