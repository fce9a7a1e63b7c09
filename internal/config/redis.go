package config

import (
	"fmt"
	"strconv"
	"time"

	"bookcatalog-backend/internal/infrastructure/cache"
)

// LoadRedisConfig reads the Redis connection and pool settings from
// environment variables, mirroring LoadDatabaseConfig.
func LoadRedisConfig() (*cache.RedisConfig, error) {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	poolSize, err := strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_POOL_SIZE: %w", err)
	}

	minIdleConns, err := strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_MIN_IDLE_CONNS: %w", err)
	}

	maxRetries, err := strconv.Atoi(getEnv("REDIS_MAX_RETRIES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_MAX_RETRIES: %w", err)
	}

	dialTimeout, err := time.ParseDuration(getEnv("REDIS_DIAL_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DIAL_TIMEOUT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("REDIS_READ_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("REDIS_WRITE_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_WRITE_TIMEOUT: %w", err)
	}

	return &cache.RedisConfig{
		Host:         getEnv("REDIS_HOST", "localhost:6379"),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           db,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
		MaxRetries:   maxRetries,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}, nil
}
