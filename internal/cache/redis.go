package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// RedisCache backs the schedule-query cache and admin session storage.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores a key-value pair with TTL
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

// Delete removes a key
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// SetSession stores a session token mapped to an email.
func (rc *RedisCache) SetSession(ctx context.Context, token, email string, ttl time.Duration) error {
	return rc.client.Set(ctx, sessionPrefix+token, email, ttl).Err()
}

// GetSession returns the email for a session token. A missing or expired
// token returns redis.Nil.
func (rc *RedisCache) GetSession(ctx context.Context, token string) (string, error) {
	return rc.client.Get(ctx, sessionPrefix+token).Result()
}

// DeleteSession removes a session token.
func (rc *RedisCache) DeleteSession(ctx context.Context, token string) error {
	return rc.client.Del(ctx, sessionPrefix+token).Err()
}
