// Package store implements the moderation SnapshotStore on PostgreSQL.
//
// Commits are conditional on the snapshot's updated_at being unchanged
// since the read (compare-and-set); a failed check surfaces as
// moderation.ErrStaleSnapshot so the service can retry against a fresh
// read. Rows are never deleted — "deleted" is a status value.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KishoreKammela/JobBoardly-sub000/internal/moderation"
)

// Store reads and conditionally rewrites entity snapshots.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// tableFor maps an entity kind to its table and id column.
func tableFor(kind moderation.EntityKind) (table, idCol string, err error) {
	switch kind {
	case moderation.EntityJob:
		return "jobs", "id", nil
	case moderation.EntityCompany:
		return "companies", "id", nil
	case moderation.EntityUserAccount:
		return "users", "uid", nil
	case moderation.EntityApplication:
		return "applications", "id", nil
	}
	return "", "", fmt.Errorf("no table for entity kind %q", kind)
}

// Load reads the current snapshot of one entity.
func (s *Store) Load(ctx context.Context, kind moderation.EntityKind, id string) (*moderation.Snapshot, error) {
	snap := moderation.Snapshot{ID: id, Kind: kind}
	var (
		status string
		err    error
	)

	switch kind {
	case moderation.EntityJob:
		err = s.pool.QueryRow(ctx,
			`SELECT status, COALESCE(moderation_reason, ''), posted_by_id, company_id, updated_at
			 FROM jobs WHERE id = $1`, id,
		).Scan(&status, &snap.ModerationReason, &snap.PostedByID, &snap.CompanyID, &snap.UpdatedAt)

	case moderation.EntityCompany:
		err = s.pool.QueryRow(ctx,
			`SELECT status, COALESCE(moderation_reason, ''), COALESCE(recruiter_uids, '{}'), updated_at
			 FROM companies WHERE id = $1`, id,
		).Scan(&status, &snap.ModerationReason, &snap.RecruiterUIDs, &snap.UpdatedAt)

	case moderation.EntityUserAccount:
		var role string
		err = s.pool.QueryRow(ctx,
			`SELECT status, role, updated_at FROM users WHERE uid = $1`, id,
		).Scan(&status, &role, &snap.UpdatedAt)
		if err == nil {
			snap.Role, err = moderation.ParseRole(role)
		}

	case moderation.EntityApplication:
		err = s.pool.QueryRow(ctx,
			`SELECT status, COALESCE(moderation_reason, ''), job_id, applicant_id, company_id, updated_at
			 FROM applications WHERE id = $1`, id,
		).Scan(&status, &snap.ModerationReason, &snap.JobID, &snap.ApplicantID, &snap.CompanyID, &snap.UpdatedAt)

	default:
		return nil, fmt.Errorf("load: no table for entity kind %q", kind)
	}

	if err == pgx.ErrNoRows {
		return nil, moderation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", kind, id, err)
	}

	snap.Status, err = moderation.ParseStatus(kind, status)
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	return &snap, nil
}

// Commit writes the new snapshot, appending the audit entry to the
// entity's history when present. The UPDATE matches on the old
// updated_at; zero rows affected means either the entity vanished
// (ErrNotFound) or a concurrent commit won (ErrStaleSnapshot).
func (s *Store) Commit(ctx context.Context, old, new moderation.Snapshot, audit *moderation.AuditEntry) error {
	table, idCol, err := tableFor(old.Kind)
	if err != nil {
		return err
	}

	historyDelta := "[]"
	if audit != nil {
		entry, err := json.Marshal(audit)
		if err != nil {
			return fmt.Errorf("commit %s %s: marshal audit: %w", old.Kind, old.ID, err)
		}
		historyDelta = fmt.Sprintf("[%s]", entry)
	}

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(
			`UPDATE %s
			 SET status            = $1,
			     moderation_reason = NULLIF($2, ''),
			     history           = COALESCE(history, '[]'::jsonb) || $3::jsonb,
			     updated_at        = $4
			 WHERE %s = $5 AND updated_at = $6`,
			table, idCol,
		),
		string(new.Status), new.ModerationReason, historyDelta,
		new.UpdatedAt, old.ID, old.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("commit %s %s: %w", old.Kind, old.ID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Disambiguate: gone entirely, or lost the compare-and-set.
	var exists bool
	err = s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table, idCol),
		old.ID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("commit %s %s: existence check: %w", old.Kind, old.ID, err)
	}
	if !exists {
		return moderation.ErrNotFound
	}
	return moderation.ErrStaleSnapshot
}
