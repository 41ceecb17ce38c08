// Package records provides the authoritative employee record store. The
// cache in pkg/store is only ever a projection of what lives here.
package records

import (
	"context"
	"errors"

	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

var (
	// ErrRecordNotFound is returned when a point lookup, update or delete
	// matches no record.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned when an insert collides with an
	// existing username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrUnknownColumn is returned when a filter or distinct query names a
	// column outside the allowed set.
	ErrUnknownColumn = errors.New("unknown column")
)

// filterableColumns is the allowed set for Distinct and FilterBy. Values
// are the physical column names, so user input never reaches SQL directly.
var filterableColumns = map[string]string{
	"department":  "department",
	"designation": "designation",
}

// FilterableColumn resolves a user-supplied column name against the
// whitelist.
func FilterableColumn(column string) (string, error) {
	c, ok := filterableColumns[column]
	if !ok {
		return "", ErrUnknownColumn
	}
	return c, nil
}

// Repository is the authoritative record store contract: point lookups,
// full scans, distinct-value enumeration, predicate scans and mutations,
// all keyed by username.
type Repository interface {
	// FindByUsername returns the record for username or ErrRecordNotFound.
	FindByUsername(ctx context.Context, username string) (structs.Record, error)

	// ScanAll returns every record in the store.
	ScanAll(ctx context.Context) ([]structs.Record, error)

	// Distinct returns the distinct values of a whitelisted column.
	Distinct(ctx context.Context, column string) ([]string, error)

	// FilterBy returns all records whose whitelisted column equals value.
	FilterBy(ctx context.Context, column, value string) ([]structs.Record, error)

	// Insert stores a new record. Returns ErrDuplicateUsername on collision.
	Insert(ctx context.Context, record structs.Record) error

	// UpdateFields applies a partial, $set-style update to the record.
	// Returns ErrRecordNotFound when no record matches.
	UpdateFields(ctx context.Context, username string, patch structs.RecordPatch) error

	// Delete removes the record. Returns ErrRecordNotFound when no record
	// matches.
	Delete(ctx context.Context, username string) error
}
