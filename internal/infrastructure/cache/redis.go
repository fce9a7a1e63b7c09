package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bookcatalog-backend/pkg/logger"
)

// RedisConfig holds connection and pool settings for Redis. Populated by
// config.LoadRedisConfig the same way database.DBConfig is.
type RedisConfig struct {
	Host     string
	Password string
	DB       int

	// Connection pool settings
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisClient wraps the go-redis client. It backs the refresh-token
// store, so auth cannot work without it.
type RedisClient struct {
	Client *redis.Client
	Config *RedisConfig
}

func NewRedisClient(config *RedisConfig) *RedisClient {
	return &RedisClient{
		Config: config,
		Client: redis.NewClient(&redis.Options{
			Addr:         config.Host,
			Password:     config.Password,
			DB:           config.DB,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,
			MaxRetries:   config.MaxRetries,
			DialTimeout:  config.DialTimeout,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		}),
	}
}

// Connect verifies connectivity with a ping.
func (r *RedisClient) Connect(ctx context.Context) error {
	logger.Debug(fmt.Sprintf("Pinging Redis at %s (db %d)", r.Config.Host, r.Config.DB))

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

// HealthCheck pings Redis with a short deadline; used by the health endpoint.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *RedisClient) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
