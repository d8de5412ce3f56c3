package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"

	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

type Config struct {
	AppURL                 string
	StoreDriver            string
	DatabaseDSN            string
	Location               *time.Location
	RateLimit              int
	RateLimitBackend       string
	RedisAddr              string
	RedisKeyPrefix         string
	LogLevel               string
	LogPretty              bool
	ShutdownTimeoutSeconds int
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	loc, err := time.LoadLocation(getEnv("TASK_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TASK_TIMEZONE: %w", err)
	}

	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}
	logPretty, err := getEnvAsBool("LOG_PRETTY", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		StoreDriver:            getEnv("STORE_DRIVER", StoreDriverMemory),
		DatabaseDSN:            getEnv("DATABASE_DSN", "file::memory:?cache=shared"),
		Location:               loc,
		RateLimit:              rateLimit,
		RateLimitBackend:       getEnv("RATE_LIMIT_BACKEND", RateLimitBackendMemory),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "task_store:ratelimit:"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogPretty:              logPretty,
		ShutdownTimeoutSeconds: shutdownTimeout,
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.StoreDriver != StoreDriverMemory && cfg.StoreDriver != StoreDriverSQLite {
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverMemory, StoreDriverSQLite)
	}
	if cfg.StoreDriver == StoreDriverSQLite && cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if cfg.RateLimitBackend != RateLimitBackendMemory && cfg.RateLimitBackend != RateLimitBackendRedis {
		return fmt.Errorf("RATE_LIMIT_BACKEND must be %q or %q", RateLimitBackendMemory, RateLimitBackendRedis)
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}
