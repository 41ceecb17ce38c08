package store

import (
	"github.com/peopleops-tools/staffdir/pkg/cache"
)

// AllRecordsKey is the canonical cache key for the "all employees" view.
// Every read/write of the full directory goes through this one collection.
const AllRecordsKey = "all_items"

// Store provides a high-level interface for managing employee records in cache
// It encapsulates order-index bookkeeping and JSON serialization
// NOTE: This store does NOT handle locking - the underlying cache drivers are
// responsible for their own concurrency safety
type Store struct {
	Records RecordCacheInterface
}

// New creates a new Store instance with all sub-stores initialized
func New(cache cache.Cache) *Store {
	return &Store{
		Records: newRecordCache(cache),
	}
}

// Compile-time interface compliance checks
var (
	_ RecordCacheInterface = (*RecordCache)(nil)
)
