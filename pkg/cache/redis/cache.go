package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/peopleops-tools/staffdir/pkg/cache"
)

// Config holds all required info for initializing the redis driver
type Config struct {
	Host     string
	Port     string
	Database int32
	Username string
	Password string
}

// RedisCache holds the handler for the redis client and auxiliary info
type RedisCache struct {
	client redis.UniversalClient
}

// NewCache inits a RedisCache instance
func NewCache(config *Config) (*RedisCache, error) {
	if config == nil {
		config = getDefaultConfig()
	}

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	options := &redis.UniversalOptions{
		Addrs:    []string{addr},
		Username: config.Username,
		Password: config.Password,
		DB:       int(config.Database),
	}

	redisClient := redis.NewUniversalClient(options)

	// Enable OpenTelemetry instrumentation
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		return nil, fmt.Errorf("failed to instrument redis: %w", err)
	}
	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}

	rc := RedisCache{
		client: redisClient,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rc.client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	return &rc, nil
}

// NewCacheWithClient wraps an already-connected client. Used by tests that
// back the driver with miniredis.
func NewCacheWithClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func getDefaultConfig() *Config {
	return &Config{
		Username: "",
		Host:     "localhost",
		Port:     "6379",
		Database: 0,
		Password: "",
	}
}

// HSet - sets a field/value pair in the hash stored at key
func (rc *RedisCache) HSet(ctx context.Context, key, field, value string) error {
	return rc.client.HSet(ctx, key, field, value).Err()
}

// HGet - gets a field's value from the hash stored at key
func (rc *RedisCache) HGet(ctx context.Context, key, field string) (string, error) {
	val, err := rc.client.HGet(ctx, key, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", cache.ErrEntryNotFound
		}
		return "", err
	}
	return val, nil
}

// HGetAll - gets all field/value pairs of the hash stored at key
func (rc *RedisCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return rc.client.HGetAll(ctx, key).Result()
}

// HDel - deletes fields from the hash stored at key
func (rc *RedisCache) HDel(ctx context.Context, key string, fields ...string) error {
	return rc.client.HDel(ctx, key, fields...).Err()
}

// HExists - checks whether a field exists in the hash stored at key
func (rc *RedisCache) HExists(ctx context.Context, key, field string) (bool, error) {
	return rc.client.HExists(ctx, key, field).Result()
}

// ListPush - appends a value to the tail of the list stored at key
func (rc *RedisCache) ListPush(ctx context.Context, key, value string) error {
	return rc.client.RPush(ctx, key, value).Err()
}

// ListRemove - removes all occurrences of a value from the list stored at key
func (rc *RedisCache) ListRemove(ctx context.Context, key, value string) error {
	return rc.client.LRem(ctx, key, 0, value).Err()
}

// ListRange - returns the full list stored at key
func (rc *RedisCache) ListRange(ctx context.Context, key string) ([]string, error) {
	return rc.client.LRange(ctx, key, 0, -1).Result()
}

// Ping - verifies the connection is alive
func (rc *RedisCache) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Disconnect ... disconnects from the redis server
func (rc *RedisCache) Disconnect() error {
	if err := rc.client.Close(); err != nil {
		return err
	}
	return nil
}
