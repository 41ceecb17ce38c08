package records

import (
	"context"
	"sort"
	"sync"

	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

// InMemoryRepository is an in-memory implementation of Repository.
// Used for testing and development. Thread-safe via RWMutex.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]structs.Record
}

// NewInMemoryRepository creates a new in-memory record repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]structs.Record),
	}
}

// FindByUsername returns the record for username or ErrRecordNotFound.
func (r *InMemoryRepository) FindByUsername(_ context.Context, username string) (structs.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[username]
	if !ok {
		return structs.Record{}, ErrRecordNotFound
	}
	return rec, nil
}

// ScanAll returns every record, ordered by username.
func (r *InMemoryRepository) ScanAll(_ context.Context) ([]structs.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]structs.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Distinct returns the distinct values of a whitelisted column.
func (r *InMemoryRepository) Distinct(_ context.Context, column string) ([]string, error) {
	if _, err := FilterableColumn(column); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, rec := range r.records {
		v := rec.FieldValue(column)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// FilterBy returns all records whose whitelisted column equals value.
func (r *InMemoryRepository) FilterBy(_ context.Context, column, value string) ([]structs.Record, error) {
	if _, err := FilterableColumn(column); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []structs.Record
	for _, rec := range r.records {
		if rec.FieldValue(column) == value {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Insert stores a new record, ErrDuplicateUsername on collision.
func (r *InMemoryRepository) Insert(_ context.Context, rec structs.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.Username]; exists {
		return ErrDuplicateUsername
	}
	r.records[rec.Username] = rec
	return nil
}

// UpdateFields applies a partial update, ErrRecordNotFound when absent.
func (r *InMemoryRepository) UpdateFields(_ context.Context, username string, patch structs.RecordPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[username]
	if !ok {
		return ErrRecordNotFound
	}
	patch.Apply(&rec)
	r.records[username] = rec
	return nil
}

// Delete removes the record, ErrRecordNotFound when absent.
func (r *InMemoryRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[username]; !ok {
		return ErrRecordNotFound
	}
	delete(r.records, username)
	return nil
}

// Compile-time interface compliance check
var _ Repository = (*InMemoryRepository)(nil)
