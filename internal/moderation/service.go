// Service orchestration for the moderation core.
//
// Service owns the read → compute → conditional-commit → cascade loop
// around the pure engine. Persistence and dispatch sit behind small
// interfaces so the engine stays testable without a database.
package moderation

import (
	"context"
	"errors"
	"log/slog"
)

// SnapshotStore is the document-store collaborator. Commit must be
// conditional on old.UpdatedAt being unchanged since the read
// (compare-and-set) and return ErrStaleSnapshot when the check fails.
// Entities are never hard-deleted: "deleted" is a status, not a removal.
type SnapshotStore interface {
	Load(ctx context.Context, kind EntityKind, id string) (*Snapshot, error)
	Commit(ctx context.Context, old, new Snapshot, audit *AuditEntry) error
}

// IntentSink receives notification intents for the external dispatcher.
// The dispatcher deduplicates by DedupeKey, so enqueueing after a
// retried commit is harmless.
type IntentSink interface {
	Enqueue(ctx context.Context, intent NotificationIntent) error
}

// WorklistStore applies worklist membership and derived-counter deltas.
// Both are recomputable views — the recount job rebuilds them from
// entity statuses, so a missed delta self-heals.
type WorklistStore interface {
	Apply(ctx context.Context, deltas []WorklistDelta) error
	Adjust(ctx context.Context, deltas []CounterDelta) error
}

// Service wires the engine to its collaborators.
type Service struct {
	engine *Engine
	store  SnapshotStore
	sink   IntentSink
	lists  WorklistStore
}

// NewService returns a configured Service.
func NewService(engine *Engine, store SnapshotStore, sink IntentSink, lists WorklistStore) *Service {
	return &Service{engine: engine, store: store, sink: sink, lists: lists}
}

// RequestTransition runs one transition end to end. On ErrStaleSnapshot
// it re-reads and retries exactly once, invisibly to the caller; every
// other failure is returned as-is for the transport layer to map.
// Nothing is mutated on InvalidTransition or PermissionDenied.
func (s *Service) RequestTransition(ctx context.Context, kind EntityKind, id string, actor Actor, to Status, reason string) (*TransitionResult, error) {
	res, err := s.attempt(ctx, kind, id, actor, to, reason)
	if errors.Is(err, ErrStaleSnapshot) {
		res, err = s.attempt(ctx, kind, id, actor, to, reason)
	}
	return res, err
}

// ResubmitJob applies the forced status reset when an employer edits a
// job: whatever the moderation outcome was, the edited content goes
// back through review.
func (s *Service) ResubmitJob(ctx context.Context, jobID string, actor Actor) (*TransitionResult, error) {
	return s.RequestTransition(ctx, EntityJob, jobID, actor, JobPending, "")
}

func (s *Service) attempt(ctx context.Context, kind EntityKind, id string, actor Actor, to Status, reason string) (*TransitionResult, error) {
	snap, err := s.store.Load(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.ApplyTransition(TransitionRequest{
		Actor:    actor,
		Snapshot: *snap,
		To:       to,
		Reason:   reason,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Commit(ctx, *snap, res.NewSnapshot, res.Audit); err != nil {
		return nil, err
	}

	// Cascades after the commit are non-fatal: worklists and counters
	// are rebuilt by the recounter, intents are deduplicated by the
	// dispatcher.
	if len(res.Cascades.Worklist) > 0 {
		if err := s.lists.Apply(ctx, res.Cascades.Worklist); err != nil {
			slog.Warn("worklist update failed", "kind", kind, "id", id, "err", err)
		}
	}
	if len(res.Cascades.Counters) > 0 {
		if err := s.lists.Adjust(ctx, res.Cascades.Counters); err != nil {
			slog.Warn("counter update failed", "kind", kind, "id", id, "err", err)
		}
	}
	for _, intent := range res.Cascades.Intents {
		if err := s.sink.Enqueue(ctx, intent); err != nil {
			slog.Warn("enqueue notification intent failed", "kind", intent.Kind, "recipient", intent.RecipientID, "err", err)
		}
	}

	return res, nil
}
