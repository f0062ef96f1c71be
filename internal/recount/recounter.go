// Package recount wires up the cron job that periodically rebuilds the
// derived moderation views (pending worklists, pending-job counters)
// from the entity tables. Counters are never sources of truth: a delta
// missed because of a crash between commit and cascade heals here.
package recount

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/KishoreKammela/JobBoardly-sub000/internal/moderation"
	"github.com/KishoreKammela/JobBoardly-sub000/internal/worklist"
)

// Recounter wraps robfig/cron and manages the rebuild loop.
type Recounter struct {
	cron  *cron.Cron
	pool  *pgxpool.Pool
	lists *worklist.Store
	spec  string // cron spec, e.g. "@every 6h"
}

// New creates a Recounter that fires every intervalHours hours.
func New(pool *pgxpool.Pool, lists *worklist.Store, intervalHours int) *Recounter {
	return &Recounter{
		cron:  cron.New(cron.WithLogger(cron.DefaultLogger)),
		pool:  pool,
		lists: lists,
		spec:  fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one
// rebuild immediately so the views are correct without waiting for the
// first tick.
func (r *Recounter) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.runRecount(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	log.Printf("[recount] Cron started — spec: %s", r.spec)

	// Run immediately on startup (non-blocking)
	go r.runRecount(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (r *Recounter) Stop() {
	r.cron.Stop()
	log.Println("[recount] Cron stopped")
}

// runRecount rebuilds every derived view in one cycle.
func (r *Recounter) runRecount(ctx context.Context) {
	log.Println("[recount] Rebuild cycle started")

	if err := r.rebuildPendingJobs(ctx); err != nil {
		log.Printf("[recount] Pending jobs rebuild error: %v", err)
	}
	if err := r.rebuildPendingCompanies(ctx); err != nil {
		log.Printf("[recount] Pending companies rebuild error: %v", err)
	}

	log.Println("[recount] Rebuild cycle complete")
}

// rebuildPendingJobs recounts jobs in pending status into the
// pending-jobs worklist and the per-company pending_jobs counter hash.
func (r *Recounter) rebuildPendingJobs(ctx context.Context) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, company_id FROM jobs WHERE status = $1`,
		string(moderation.JobPending),
	)
	if err != nil {
		return fmt.Errorf("query pending jobs: %w", err)
	}
	defer rows.Close()

	var members []string
	counts := make(map[string]int64)
	for rows.Next() {
		var id, companyID string
		if err := rows.Scan(&id, &companyID); err != nil {
			return fmt.Errorf("scan pending job: %w", err)
		}
		members = append(members, id)
		counts[companyID]++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate pending jobs: %w", err)
	}

	return r.lists.Rebuild(ctx, moderation.WorklistPendingJobs, members,
		moderation.CounterPendingJobs, counts)
}

// rebuildPendingCompanies recounts companies in pending status into the
// pending-companies worklist (no companion counter).
func (r *Recounter) rebuildPendingCompanies(ctx context.Context) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM companies WHERE status = $1`,
		string(moderation.CompanyPending),
	)
	if err != nil {
		return fmt.Errorf("query pending companies: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan pending company: %w", err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate pending companies: %w", err)
	}

	return r.lists.Rebuild(ctx, moderation.WorklistPendingCompanies, members, "", nil)
}
