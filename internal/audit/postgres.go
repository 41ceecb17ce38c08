package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

const createAuditTable = `
CREATE TABLE IF NOT EXISTS audit_logs (
	id          TEXT PRIMARY KEY,
	ts          TIMESTAMPTZ NOT NULL,
	actor       TEXT NOT NULL,
	subject     TEXT NOT NULL,
	action      TEXT NOT NULL
)`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the audit_logs table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("failed to ensure audit schema: %w", err)
	}
	return nil
}

// Append records one mutation event.
func (r *PostgresRepository) Append(ctx context.Context, entry Entry) (structs.AuditRecord, error) {
	rec := structs.AuditRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Actor:     entry.Actor,
		Subject:   entry.Subject,
		Action:    entry.Action,
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_logs (id, ts, actor, subject, action) VALUES ($1, $2, $3, $4, $5)",
		rec.ID, rec.Timestamp, rec.Actor, rec.Subject, rec.Action)
	if err != nil {
		return structs.AuditRecord{}, fmt.Errorf("failed to append audit record: %w", err)
	}
	return rec, nil
}

// List returns the full history, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]structs.AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, ts, actor, subject, action FROM audit_logs ORDER BY ts DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var out []structs.AuditRecord
	for rows.Next() {
		var rec structs.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Actor, &rec.Subject, &rec.Action); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
	}
	return out, nil
}
