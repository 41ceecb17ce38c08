package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/peopleops-tools/staffdir/pkg/cache"
	"github.com/peopleops-tools/staffdir/pkg/common/structs"
	"github.com/peopleops-tools/staffdir/pkg/logger"
)

// ErrCacheMiss signals that a cached collection is empty or absent and the
// caller should refill from the authoritative store.
var ErrCacheMiss = errors.New("cache miss")

// orderIndexSuffix is appended to the cache key to name the companion list
// tracking insertion order of individually inserted records.
const orderIndexSuffix = ":order"

// RecordCache implements RecordCacheInterface on top of a cache driver.
type RecordCache struct {
	cache cache.Cache
}

func newRecordCache(cache cache.Cache) *RecordCache {
	return &RecordCache{cache: cache}
}

func orderIndexKey(cacheKey string) string {
	return cacheKey + orderIndexSuffix
}

func encodeRecord(record structs.Record) (string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to serialize record %q: %w", record.Username, err)
	}
	return string(raw), nil
}

func decodeRecord(raw string) (structs.Record, error) {
	var record structs.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return structs.Record{}, fmt.Errorf("failed to deserialize cached record: %w", err)
	}
	return record, nil
}

// ListAll returns every cached record for the key, ordered by username for
// deterministic output (the hash itself iterates in arbitrary order).
func (rc *RecordCache) ListAll(ctx context.Context, cacheKey string) ([]structs.Record, error) {
	entries, err := rc.cache.HGetAll(ctx, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached records for %q: %w", cacheKey, err)
	}
	if len(entries) == 0 {
		return nil, ErrCacheMiss
	}

	records := make([]structs.Record, 0, len(entries))
	for _, raw := range entries {
		record, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Username < records[j].Username
	})
	return records, nil
}

// Backfill bulk-loads records into the per-record hash. The order index is
// intentionally left alone; see RecordCacheInterface.
func (rc *RecordCache) Backfill(ctx context.Context, cacheKey string, records []structs.Record) error {
	for _, record := range records {
		raw, err := encodeRecord(record)
		if err != nil {
			return err
		}
		if err := rc.cache.HSet(ctx, cacheKey, record.Username, raw); err != nil {
			return fmt.Errorf("failed to backfill record %q: %w", record.Username, err)
		}
	}
	return nil
}

// UpsertFields merges patch into the cached record for username. A missing
// entry is skipped: the authoritative store has already been updated and the
// entry will reappear on the next backfill.
func (rc *RecordCache) UpsertFields(ctx context.Context, cacheKey, username string, patch structs.RecordPatch) error {
	raw, err := rc.cache.HGet(ctx, cacheKey, username)
	if err != nil {
		if errors.Is(err, cache.ErrEntryNotFound) {
			logger.Logger(ctx).WithField("username", username).
				Info("record not cached, skipping field upsert")
			return nil
		}
		return fmt.Errorf("failed to read cached record %q: %w", username, err)
	}

	record, err := decodeRecord(raw)
	if err != nil {
		return err
	}
	patch.Apply(&record)

	merged, err := encodeRecord(record)
	if err != nil {
		return err
	}
	if err := rc.cache.HSet(ctx, cacheKey, username, merged); err != nil {
		return fmt.Errorf("failed to write merged record %q: %w", username, err)
	}
	return nil
}

// InsertNew stores the record and registers its username in the order index
// exactly once.
func (rc *RecordCache) InsertNew(ctx context.Context, cacheKey string, record structs.Record) error {
	raw, err := encodeRecord(record)
	if err != nil {
		return err
	}
	if err := rc.cache.HSet(ctx, cacheKey, record.Username, raw); err != nil {
		return fmt.Errorf("failed to cache record %q: %w", record.Username, err)
	}

	indexKey := orderIndexKey(cacheKey)
	existing, err := rc.cache.ListRange(ctx, indexKey)
	if err != nil {
		return fmt.Errorf("failed to read order index for %q: %w", cacheKey, err)
	}
	for _, username := range existing {
		if username == record.Username {
			return nil
		}
	}
	if err := rc.cache.ListPush(ctx, indexKey, record.Username); err != nil {
		return fmt.Errorf("failed to append %q to order index: %w", record.Username, err)
	}
	return nil
}

// Remove deletes the record and its order index entry. InsertNew keeps the
// index free of duplicates, but all occurrences are removed anyway.
func (rc *RecordCache) Remove(ctx context.Context, cacheKey, username string) error {
	present, err := rc.cache.HExists(ctx, cacheKey, username)
	if err != nil {
		return fmt.Errorf("failed to check cached record %q: %w", username, err)
	}
	if !present {
		return nil
	}

	if err := rc.cache.HDel(ctx, cacheKey, username); err != nil {
		return fmt.Errorf("failed to delete cached record %q: %w", username, err)
	}
	if err := rc.cache.ListRemove(ctx, orderIndexKey(cacheKey), username); err != nil {
		return fmt.Errorf("failed to remove %q from order index: %w", username, err)
	}
	return nil
}

// SortedView sorts whatever is cached, stably, by the named column. The base
// order is username-lexicographic so equal sort keys resolve the same way on
// every call.
func (rc *RecordCache) SortedView(ctx context.Context, cacheKey, column string, descending bool) ([]structs.Record, error) {
	records, err := rc.ListAll(ctx, cacheKey)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return []structs.Record{}, nil
		}
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		vi, vj := records[i].FieldValue(column), records[j].FieldValue(column)
		if descending {
			return vi > vj
		}
		return vi < vj
	})
	return records, nil
}
