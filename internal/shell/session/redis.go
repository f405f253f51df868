package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in a shared redis.
const keyPrefix = "edgegate:session:"

// RedisStore implements Store on redis, for multi-node deployments where
// any gateway instance may serve a visitor's next request.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

// Get returns the value for key; a missing key reads as empty, not an error.
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("session get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key with the session TTL.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

// Close releases the redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
