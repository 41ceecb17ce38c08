package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

// uniqueViolation is the postgres error code raised when the username
// primary key collides.
const uniqueViolation = "23505"

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
	username    TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	password    TEXT NOT NULL DEFAULT '',
	department  TEXT NOT NULL DEFAULT '',
	designation TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	phone       BIGINT NOT NULL DEFAULT 0,
	start_date  TEXT NOT NULL DEFAULT '',
	role        TEXT NOT NULL DEFAULT ''
)`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the employees table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEmployeesTable); err != nil {
		return fmt.Errorf("failed to ensure employees schema: %w", err)
	}
	return nil
}

const recordColumns = "username, name, password, department, designation, email, phone, start_date, role"

func scanRecord(row interface{ Scan(...any) error }) (structs.Record, error) {
	var rec structs.Record
	err := row.Scan(&rec.Username, &rec.Name, &rec.Password, &rec.Department,
		&rec.Designation, &rec.Email, &rec.Phone, &rec.StartDate, &rec.Role)
	return rec, err
}

// FindByUsername returns the record for username or ErrRecordNotFound.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (structs.Record, error) {
	query := "SELECT " + recordColumns + " FROM employees WHERE username = $1"
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return structs.Record{}, ErrRecordNotFound
		}
		return structs.Record{}, fmt.Errorf("failed to look up record %q: %w", username, err)
	}
	return rec, nil
}

// ScanAll returns every record in the store.
func (r *PostgresRepository) ScanAll(ctx context.Context) ([]structs.Record, error) {
	query := "SELECT " + recordColumns + " FROM employees ORDER BY username"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	defer rows.Close()

	var out []structs.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}
	return out, nil
}

// Distinct returns the distinct values of a whitelisted column.
func (r *PostgresRepository) Distinct(ctx context.Context, column string) ([]string, error) {
	col, err := FilterableColumn(column)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT DISTINCT %s FROM employees ORDER BY %s", col, col)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s values: %w", col, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s value: %w", col, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s values: %w", col, err)
	}
	return out, nil
}

// FilterBy returns all records whose whitelisted column equals value.
func (r *PostgresRepository) FilterBy(ctx context.Context, column, value string) ([]structs.Record, error) {
	col, err := FilterableColumn(column)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM employees WHERE %s = $1 ORDER BY username", recordColumns, col)
	rows, err := r.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to filter records by %s: %w", col, err)
	}
	defer rows.Close()

	var out []structs.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}
	return out, nil
}

// Insert stores a new record. Returns ErrDuplicateUsername on collision.
func (r *PostgresRepository) Insert(ctx context.Context, rec structs.Record) error {
	query := "INSERT INTO employees (" + recordColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)"
	_, err := r.db.ExecContext(ctx, query,
		rec.Username, rec.Name, rec.Password, rec.Department,
		rec.Designation, rec.Email, rec.Phone, rec.StartDate, rec.Role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to insert record %q: %w", rec.Username, err)
	}
	return nil
}

// UpdateFields applies a partial update built from the patch's present
// fields only.
func (r *PostgresRepository) UpdateFields(ctx context.Context, username string, patch structs.RecordPatch) error {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Password != nil {
		add("password", *patch.Password)
	}
	if patch.Department != nil {
		add("department", *patch.Department)
	}
	if patch.Designation != nil {
		add("designation", *patch.Designation)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, username)
	query := fmt.Sprintf("UPDATE employees SET %s WHERE username = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update record %q: %w", username, err)
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for %q: %w", username, err)
	}
	if matched == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the record, ErrRecordNotFound when nothing matched.
func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM employees WHERE username = $1", username)
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", username, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for %q: %w", username, err)
	}
	if deleted == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Compile-time interface compliance check
var _ Repository = (*PostgresRepository)(nil)
