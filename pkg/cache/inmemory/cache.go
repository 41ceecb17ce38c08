package inmemory

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/peopleops-tools/staffdir/pkg/cache"
)

// Config holds expiration settings in seconds. Negative values disable
// expiration/cleanup entirely.
type Config struct {
	DefaultExpiration int64
	CleanupInterval   int64
}

// InMemoryCache implements the cache driver on top of go-cache. Hashes and
// lists are stored as whole values under their key; a mutex serializes the
// read-modify-write cycles go-cache itself cannot make atomic.
type InMemoryCache struct {
	mu      sync.Mutex
	backend *gocache.Cache
}

// NewCache inits an InMemoryCache instance
func NewCache(config *Config) (*InMemoryCache, error) {
	if config == nil {
		config = &Config{DefaultExpiration: -1, CleanupInterval: -1}
	}

	expiration := gocache.NoExpiration
	if config.DefaultExpiration > 0 {
		expiration = time.Duration(config.DefaultExpiration) * time.Second
	}
	cleanup := time.Duration(0)
	if config.CleanupInterval > 0 {
		cleanup = time.Duration(config.CleanupInterval) * time.Second
	}

	return &InMemoryCache{
		backend: gocache.New(expiration, cleanup),
	}, nil
}

func (c *InMemoryCache) getHash(key string) map[string]string {
	if v, found := c.backend.Get(key); found {
		if h, ok := v.(map[string]string); ok {
			return h
		}
	}
	return nil
}

func (c *InMemoryCache) getList(key string) []string {
	if v, found := c.backend.Get(key); found {
		if l, ok := v.([]string); ok {
			return l
		}
	}
	return nil
}

// HSet sets a field/value pair in the hash stored at key
func (c *InMemoryCache) HSet(_ context.Context, key, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := c.getHash(key)
	if hash == nil {
		hash = make(map[string]string)
	}
	hash[field] = value
	c.backend.Set(key, hash, gocache.DefaultExpiration)
	return nil
}

// HGet gets a field's value from the hash stored at key
func (c *InMemoryCache) HGet(_ context.Context, key, field string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := c.getHash(key)
	if hash == nil {
		return "", cache.ErrEntryNotFound
	}
	val, ok := hash[field]
	if !ok {
		return "", cache.ErrEntryNotFound
	}
	return val, nil
}

// HGetAll gets all field/value pairs of the hash stored at key
func (c *InMemoryCache) HGetAll(_ context.Context, key string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]string)
	for field, value := range c.getHash(key) {
		out[field] = value
	}
	return out, nil
}

// HDel deletes fields from the hash stored at key
func (c *InMemoryCache) HDel(_ context.Context, key string, fields ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := c.getHash(key)
	if hash == nil {
		return nil
	}
	for _, field := range fields {
		delete(hash, field)
	}
	if len(hash) == 0 {
		c.backend.Delete(key)
		return nil
	}
	c.backend.Set(key, hash, gocache.DefaultExpiration)
	return nil
}

// HExists checks whether a field exists in the hash stored at key
func (c *InMemoryCache) HExists(_ context.Context, key, field string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := c.getHash(key)
	if hash == nil {
		return false, nil
	}
	_, ok := hash[field]
	return ok, nil
}

// ListPush appends a value to the tail of the list stored at key
func (c *InMemoryCache) ListPush(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.getList(key)
	list = append(list, value)
	c.backend.Set(key, list, gocache.DefaultExpiration)
	return nil
}

// ListRemove removes all occurrences of a value from the list stored at key
func (c *InMemoryCache) ListRemove(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.getList(key)
	if list == nil {
		return nil
	}
	filtered := list[:0]
	for _, v := range list {
		if v != value {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		c.backend.Delete(key)
		return nil
	}
	c.backend.Set(key, filtered, gocache.DefaultExpiration)
	return nil
}

// ListRange returns the full list stored at key
func (c *InMemoryCache) ListRange(_ context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.getList(key)
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// Ping is a no-op for the in-memory driver
func (c *InMemoryCache) Ping(_ context.Context) error {
	return nil
}

// Disconnect flushes all entries
func (c *InMemoryCache) Disconnect() error {
	c.backend.Flush()
	return nil
}
