package moderation

import "fmt"

// ErrNotFound is returned when the target entity is missing (or vanished
// between read and commit). Terminal for the request — never retried.
var ErrNotFound = fmt.Errorf("entity not found")

// ErrStaleSnapshot is returned by the store when the conditional commit
// failed because the entity changed since the snapshot was read. The
// service retries exactly once against a fresh snapshot before
// surfacing it.
var ErrStaleSnapshot = fmt.Errorf("snapshot is stale")

// InvalidTransitionError reports a (from → to) edge that does not exist
// in the transition table for the entity kind. In normal use this is a
// caller bug: the UI should only offer LegalTargets.
type InvalidTransitionError struct {
	Kind EntityKind
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition %s → %s is not allowed for %s", e.From, e.To, e.Kind)
}

// PermissionDeniedError carries the guard's stable, user-displayable
// denial reason. Shown to the actor verbatim.
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string { return e.Reason }
