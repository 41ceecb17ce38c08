package store

import (
	"context"

	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

// RecordCacheInterface defines the write-through record cache operations
// This interface enables mocking in tests and follows the dependency inversion principle
//
// Every operation is keyed by a cacheKey naming a logical cached collection
// (the directory uses AllRecordsKey). Two structures live under each key:
// a per-record hash (field = username, value = serialized record) and an
// order index (list at "<cacheKey>:order" tracking insertion order of the
// individual insert path).
//
// All operations are best-effort side channels: callers must log and swallow
// errors rather than failing the triggering CRUD operation. The cache is
// never the authority for a write decision.
type RecordCacheInterface interface {
	// ListAll returns all currently cached records for the key.
	// Returns ErrCacheMiss if the hash is empty or absent; it never falls
	// back to the authoritative store itself - the caller decides whether
	// to backfill.
	ListAll(ctx context.Context, cacheKey string) ([]structs.Record, error)

	// Backfill stores every record into the per-record hash under its
	// username. The order index is deliberately not touched - the bulk
	// refill path trades strict order tracking for throughput.
	Backfill(ctx context.Context, cacheKey string, records []structs.Record) error

	// UpsertFields merges the given partial fields into the cached record
	// for username and writes the merged record back. If the username is
	// not cached this is a logged no-op: the cache is best-effort and
	// UpsertFields never creates a new entry.
	UpsertFields(ctx context.Context, cacheKey, username string, patch structs.RecordPatch) error

	// InsertNew serializes the record and stores it under its username,
	// then appends the username to the order index iff not already present.
	// The idempotent append guards against double-registration on retry.
	InsertNew(ctx context.Context, cacheKey string, record structs.Record) error

	// Remove deletes the hash entry for username and all matching order
	// index entries. An absent username is treated as already-consistent
	// and is a no-op, not an error.
	Remove(ctx context.Context, cacheKey, username string) error

	// SortedView returns all cached records sorted by the named column
	// using a stable comparison; missing column values compare as empty.
	// The order index is not consulted - sort order is computed fresh from
	// field values. An empty cache yields an empty slice, never a backfill.
	SortedView(ctx context.Context, cacheKey, column string, descending bool) ([]structs.Record, error)
}
