package moderation

import "time"

// TransitionRequest asks the engine to move one entity to a new status.
// The caller supplies the current snapshot it read; the engine never
// fetches anything itself.
type TransitionRequest struct {
	Actor    Actor
	Snapshot Snapshot
	To       Status
	Reason   string
}

// TransitionResult describes everything a successful transition
// requires of the caller: commit NewSnapshot (and Audit) conditionally
// on the old snapshot's UpdatedAt, apply Cascades, enqueue Intents.
type TransitionResult struct {
	NewSnapshot Snapshot
	Affirmed    bool // status unchanged; only reason/updatedAt moved
	Cascades    CascadeSet
	Audit       *AuditEntry
}

// Engine validates and computes transitions. It is stateless apart from
// the injected clock and safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an Engine using the wall clock.
func NewEngine() *Engine { return &Engine{now: time.Now} }

// NewEngineAt returns an Engine with an injected clock, for tests.
func NewEngineAt(now func() time.Time) *Engine { return &Engine{now: now} }

// ApplyTransition runs one transition end to end: structural legality,
// authorization, new-snapshot and cascade computation. It performs no
// I/O and mutates nothing — on any error the entity is untouched and
// the request is fully recoverable.
func (e *Engine) ApplyTransition(req TransitionRequest) (*TransitionResult, error) {
	from := req.Snapshot.Status

	if _, err := ParseStatus(req.Snapshot.Kind, string(req.To)); err != nil {
		return nil, &InvalidTransitionError{Kind: req.Snapshot.Kind, From: from, To: req.To}
	}
	if !IsLegalTransition(req.Snapshot.Kind, from, req.To) {
		return nil, &InvalidTransitionError{Kind: req.Snapshot.Kind, From: from, To: req.To}
	}

	if d := Authorize(req.Actor, req.Snapshot, req.To); !d.Allowed {
		return nil, &PermissionDeniedError{Reason: d.Reason}
	}

	now := e.now().UTC()
	next := req.Snapshot
	next.Status = req.To
	next.ModerationReason = req.Reason
	next.UpdatedAt = now

	res := &TransitionResult{
		NewSnapshot: next,
		Affirmed:    req.To == from,
		Cascades:    ComputeCascades(req.Snapshot, next),
	}

	if req.Reason != "" || requiresAudit(req.To) {
		res.Audit = &AuditEntry{
			Reason:    req.Reason,
			ActorRole: req.Actor.Role,
			From:      from,
			To:        req.To,
			At:        now,
		}
	}

	return res, nil
}

// requiresAudit reports whether the target status is a rejection or
// suspension, which always get a history entry even without a reason
// (the UI makes the reason mandatory; the engine stays storage-agnostic
// and treats it as optional).
func requiresAudit(to Status) bool {
	switch to {
	// "rejected" and "suspended" are shared by the job, company and
	// user status domains.
	case JobRejected, JobSuspended, AppRejected:
		return true
	}
	return false
}
