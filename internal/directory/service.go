// Package directory orchestrates the employee CRUD flow: authoritative
// record store first, then the write-through cache, then the audit trail.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/peopleops-tools/staffdir/internal/audit"
	"github.com/peopleops-tools/staffdir/internal/records"
	"github.com/peopleops-tools/staffdir/pkg/common/structs"
	"github.com/peopleops-tools/staffdir/pkg/logger"
	"github.com/peopleops-tools/staffdir/pkg/store"
)

// ErrValidation marks client errors on the write path: missing password on
// create, malformed start date. Wrapped errors carry the detail.
var ErrValidation = errors.New("validation failed")

// PasswordHasher hashes plaintext passwords before they reach the record
// store. Satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// UpdateResult reports the outcome of an update request.
type UpdateResult struct {
	Changed bool   `json:"-"`
	Message string `json:"message"`
}

// Service coordinates the record store, the record cache and the audit log.
// The three collaborators are injected at construction time and shared by
// all concurrent requests; no locking is layered above them. Within one
// request the order is fixed: record store mutation, then cache mutation,
// then audit append. A cache failure never rolls back or blocks the
// authoritative write - it is logged and swallowed.
type Service struct {
	repo   records.Repository
	cache  store.RecordCacheInterface
	audit  audit.Repository
	hasher PasswordHasher
}

// NewService wires the directory service with its collaborators.
func NewService(repo records.Repository, cache store.RecordCacheInterface, auditRepo audit.Repository, hasher PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		audit:  auditRepo,
		hasher: hasher,
	}
}

// ListUsers returns the full directory, cache-aside: the cache is consulted
// first and backfilled from the record store on a miss. Passwords are
// stripped from the result.
func (s *Service) ListUsers(ctx context.Context) ([]structs.Record, error) {
	cached, err := s.cache.ListAll(ctx, store.AllRecordsKey)
	if err == nil {
		return sanitize(cached), nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		// Treat a broken cache like a miss: the record store remains
		// the source of truth.
		logger.Logger(ctx).WithError(err).Error("cache read failed, falling back to record store")
	}

	all, err := s.repo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Backfill(ctx, store.AllRecordsKey, all); err != nil {
		logger.Logger(ctx).WithError(err).Error("cache backfill failed")
	}
	return sanitize(all), nil
}

// ListAudit returns the change history straight from the audit store; the
// audit trail is never cached.
func (s *Service) ListAudit(ctx context.Context) ([]structs.AuditRecord, error) {
	return s.audit.List(ctx)
}

// UniqueValues enumerates the distinct values of a whitelisted column
// directly against the record store.
func (s *Service) UniqueValues(ctx context.Context, column string) ([]string, error) {
	return s.repo.Distinct(ctx, column)
}

// FilterUsers runs a predicate scan against the record store. Filter
// combinations are too parameterized to cache.
func (s *Service) FilterUsers(ctx context.Context, column, value string) ([]structs.Record, error) {
	out, err := s.repo.FilterBy(ctx, column, value)
	if err != nil {
		return nil, err
	}
	return sanitize(out), nil
}

// SortUsers returns a sorted view over whatever is currently cached. It
// never triggers a backfill.
func (s *Service) SortUsers(ctx context.Context, column string, descending bool) ([]structs.Record, error) {
	out, err := s.cache.SortedView(ctx, store.AllRecordsKey, column, descending)
	if err != nil {
		logger.Logger(ctx).WithError(err).Error("cache sorted view failed")
		return []structs.Record{}, nil
	}
	return sanitize(out), nil
}

// CreateUser validates and stores a new record, mirrors it into the cache
// and appends one audit record. Uniqueness is decided by the record store,
// never by the cache.
func (s *Service) CreateUser(ctx context.Context, rec structs.Record, actor string) (structs.Record, error) {
	if rec.Username == "" {
		return structs.Record{}, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if rec.Password == "" {
		return structs.Record{}, fmt.Errorf("%w: password is required for new user creation", ErrValidation)
	}
	if err := rec.NormalizeStartDate(); err != nil {
		return structs.Record{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.repo.FindByUsername(ctx, rec.Username); err == nil {
		return structs.Record{}, records.ErrDuplicateUsername
	} else if !errors.Is(err, records.ErrRecordNotFound) {
		return structs.Record{}, err
	}

	hash, err := s.hasher.HashPassword(rec.Password)
	if err != nil {
		return structs.Record{}, fmt.Errorf("failed to hash password: %w", err)
	}
	rec.Password = hash

	if err := s.repo.Insert(ctx, rec); err != nil {
		return structs.Record{}, err
	}

	if err := s.cache.InsertNew(ctx, store.AllRecordsKey, rec); err != nil {
		logger.Logger(ctx).WithError(err).Error("cache insert failed after record store write")
	}

	if err := s.appendAudit(ctx, actor, rec.Username, fmt.Sprintf("Added User %s", rec.Username)); err != nil {
		return structs.Record{}, err
	}
	return rec.Sanitized(), nil
}

// UpdateUser computes a field-level diff and applies a partial update. An
// empty diff returns a no-change result without touching the record store,
// the cache or the audit log.
func (s *Service) UpdateUser(ctx context.Context, username string, patch structs.RecordPatch, actor string) (UpdateResult, error) {
	if patch.StartDate != nil {
		probe := structs.Record{StartDate: *patch.StartDate}
		if err := probe.NormalizeStartDate(); err != nil {
			return UpdateResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		patch.StartDate = &probe.StartDate
	}
	// An empty password field on an update form means "keep it".
	if patch.Password != nil && *patch.Password == "" {
		patch.Password = nil
	}

	current, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return UpdateResult{}, err
	}

	changes := patch.Diff(current)
	if len(changes) == 0 {
		return UpdateResult{Changed: false, Message: "No changes detected"}, nil
	}

	if patch.Password != nil {
		hash, err := s.hasher.HashPassword(*patch.Password)
		if err != nil {
			return UpdateResult{}, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.Password = &hash
	}

	if err := s.repo.UpdateFields(ctx, username, patch); err != nil {
		return UpdateResult{}, err
	}

	if err := s.cache.UpsertFields(ctx, store.AllRecordsKey, username, patch); err != nil {
		logger.Logger(ctx).WithError(err).Error("cache upsert failed after record store write")
	}

	if err := s.appendAudit(ctx, actor, username, describeChanges(changes)); err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Changed: true, Message: "Row updated successfully"}, nil
}

// DeleteUser removes the record, evicts it from the cache and appends one
// audit record.
func (s *Service) DeleteUser(ctx context.Context, username, actor string) error {
	if err := s.repo.Delete(ctx, username); err != nil {
		return err
	}

	if err := s.cache.Remove(ctx, store.AllRecordsKey, username); err != nil {
		logger.Logger(ctx).WithError(err).Error("cache remove failed after record store delete")
	}

	return s.appendAudit(ctx, actor, username, fmt.Sprintf("Deleted User %s", username))
}

// appendAudit writes one history entry. Unlike cache failures, a failed
// audit append surfaces as a server error; the record store mutation that
// preceded it is not rolled back.
func (s *Service) appendAudit(ctx context.Context, actor, subject, action string) error {
	if _, err := s.audit.Append(ctx, audit.Entry{Actor: actor, Subject: subject, Action: action}); err != nil {
		logger.Logger(ctx).WithError(err).Error("failed to append audit record")
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// describeChanges renders a field diff into one audit description, e.g.
// "department from 'Eng' to 'Sales', role from 'user' to 'admin'".
func describeChanges(changes []structs.FieldChange) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s from '%s' to '%s'", c.Field, c.Old, c.New))
	}
	return strings.Join(parts, ", ")
}

func sanitize(in []structs.Record) []structs.Record {
	out := make([]structs.Record, 0, len(in))
	for _, rec := range in {
		out = append(out, rec.Sanitized())
	}
	return out
}
