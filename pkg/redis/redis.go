package redis

import (
	"context"
	"goatedvips/pkg/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the go-redis client with small result helpers.
type RedisClient struct {
	*redis.Client
}

// NewClient creates a redis client from the configuration.
func NewClient(cfg config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     100,
		MinIdleConns: 10,
		PoolTimeout:  30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{Client: client}, nil
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to return the Result directly.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Wrapper to already return the .Err()
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// Publish sends a message on a pub/sub channel.
func (r *RedisClient) Publish(ctx context.Context, channel string, payload any) error {
	return r.Client.Publish(ctx, channel, payload).Err()
}
