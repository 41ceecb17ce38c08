// Package audit provides the append-only change history for the directory.
// One record is written per successful mutation; entries are immutable.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

// Entry is the input for creating one audit record. Timestamp and ID are
// assigned by the repository.
type Entry struct {
	Actor   string
	Subject string
	Action  string
}

// Repository defines the audit log operations. The log is append-only;
// there is no update or delete.
type Repository interface {
	// Append records one mutation event and returns the stored record.
	Append(ctx context.Context, entry Entry) (structs.AuditRecord, error)

	// List returns the full history, newest first.
	List(ctx context.Context) ([]structs.AuditRecord, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
// Used for testing and development. Thread-safe via RWMutex.
type InMemoryRepository struct {
	mu   sync.RWMutex
	logs []structs.AuditRecord
}

// NewInMemoryRepository creates a new in-memory audit repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Append records one mutation event.
func (r *InMemoryRepository) Append(_ context.Context, entry Entry) (structs.AuditRecord, error) {
	rec := structs.AuditRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Actor:     entry.Actor,
		Subject:   entry.Subject,
		Action:    entry.Action,
	}

	r.mu.Lock()
	r.logs = append(r.logs, rec)
	r.mu.Unlock()

	return rec, nil
}

// List returns the full history, newest first.
func (r *InMemoryRepository) List(_ context.Context) ([]structs.AuditRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]structs.AuditRecord, 0, len(r.logs))
	for i := len(r.logs) - 1; i >= 0; i-- {
		out = append(out, r.logs[i])
	}
	return out, nil
}

// Compile-time interface compliance checks
var (
	_ Repository = (*InMemoryRepository)(nil)
	_ Repository = (*PostgresRepository)(nil)
)
