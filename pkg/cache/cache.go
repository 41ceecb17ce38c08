// Package cache defines the low-level cache driver contract shared by the
// redis and inmemory implementations. The typed record store in pkg/store
// is built on top of this interface.
package cache

import (
	"context"
	"errors"
)

// ErrEntryNotFound is returned by HGet when the hash or field is absent.
var ErrEntryNotFound = errors.New("cache entry not found")

// Cache is the driver interface. Implementations are safe for concurrent
// use; no additional locking is layered above them.
type Cache interface {
	// HSet stores value under field in the hash at key, creating the hash
	// if needed.
	HSet(ctx context.Context, key, field, value string) error

	// HGet returns the value stored under field in the hash at key.
	// Returns ErrEntryNotFound if the hash or the field is absent.
	HGet(ctx context.Context, key, field string) (string, error)

	// HGetAll returns every field/value pair of the hash at key.
	// An absent hash yields an empty map, not an error.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// HDel removes the given fields from the hash at key. Missing fields
	// are ignored.
	HDel(ctx context.Context, key string, fields ...string) error

	// HExists reports whether field is present in the hash at key.
	HExists(ctx context.Context, key, field string) (bool, error)

	// ListPush appends value to the tail of the list at key.
	ListPush(ctx context.Context, key, value string) error

	// ListRemove deletes all occurrences of value from the list at key.
	ListRemove(ctx context.Context, key, value string) error

	// ListRange returns the full contents of the list at key in order.
	// An absent list yields an empty slice.
	ListRange(ctx context.Context, key string) ([]string, error)

	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error

	// Disconnect releases the underlying connection.
	Disconnect() error
}
