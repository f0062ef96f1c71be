// Cascade effects.
//
// Cascades are derived artifacts of a committed transition: worklist
// membership deltas, derived counter deltas, and notification intents.
// ComputeCascades is a pure function of the before/after snapshots and
// is idempotent — recomputing for the same pair yields an identical
// CascadeSet, so a retried transition never double-fires once the
// dispatcher deduplicates by intent DedupeKey.
package moderation

import (
	"fmt"
	"time"
)

// Worklist names. Redis set keys are derived from these by the
// worklist store.
const (
	WorklistPendingJobs      = "pending-jobs"
	WorklistPendingCompanies = "pending-companies"
)

// Counter names.
const CounterPendingJobs = "pending_jobs"

// Notification intent kinds.
const (
	IntentCompanyRestricted = "company-restricted"
	IntentApplicationStatus = "application-status"
)

// WorklistOp is a membership change direction.
type WorklistOp string

const (
	WorklistAdd    WorklistOp = "add"
	WorklistRemove WorklistOp = "remove"
)

// WorklistDelta adds or removes an entity from a named worklist view.
type WorklistDelta struct {
	Worklist string     `json:"worklist"`
	EntityID string     `json:"entityId"`
	Op       WorklistOp `json:"op"`
}

// CounterDelta adjusts a derived counter. Counters are never sources of
// truth: the recount job rebuilds them from entity statuses, so a
// missed delta self-heals.
type CounterDelta struct {
	Counter string `json:"counter"`
	Scope   string `json:"scope"` // e.g. the owning company ID
	Delta   int    `json:"delta"`
}

// NotificationIntent describes one notification to hand to the external
// dispatcher. Generation is in scope here; delivery is not.
type NotificationIntent struct {
	Kind        string     `json:"kind"`
	RecipientID string     `json:"recipientId"`
	EntityKind  EntityKind `json:"entityKind"`
	EntityID    string     `json:"entityId"`
	Status      Status     `json:"status"`
	DedupeKey   string     `json:"dedupeKey"`
}

// CascadeSet bundles every derived effect of one transition.
type CascadeSet struct {
	Worklist []WorklistDelta      `json:"worklist,omitempty"`
	Counters []CounterDelta       `json:"counters,omitempty"`
	Intents  []NotificationIntent `json:"intents,omitempty"`
}

// dedupeKey identifies a transition outcome for at-most-once dispatch.
func dedupeKey(entityID string, to Status, updatedAt time.Time) string {
	return fmt.Sprintf("%s:%s:%d", entityID, to, updatedAt.Unix())
}

// ComputeCascades derives the CascadeSet for a committed old → new
// snapshot pair. An affirm (status unchanged) produces no cascades.
func ComputeCascades(old, new Snapshot) CascadeSet {
	var set CascadeSet
	if old.Status == new.Status {
		return set
	}

	switch old.Kind {
	case EntityJob:
		if old.Status == JobPending {
			set.Worklist = append(set.Worklist, WorklistDelta{
				Worklist: WorklistPendingJobs, EntityID: new.ID, Op: WorklistRemove,
			})
			set.Counters = append(set.Counters, CounterDelta{
				Counter: CounterPendingJobs, Scope: old.CompanyID, Delta: -1,
			})
		}
		if new.Status == JobPending {
			set.Worklist = append(set.Worklist, WorklistDelta{
				Worklist: WorklistPendingJobs, EntityID: new.ID, Op: WorklistAdd,
			})
			set.Counters = append(set.Counters, CounterDelta{
				Counter: CounterPendingJobs, Scope: old.CompanyID, Delta: 1,
			})
		}

	case EntityCompany:
		if old.Status == CompanyPending {
			set.Worklist = append(set.Worklist, WorklistDelta{
				Worklist: WorklistPendingCompanies, EntityID: new.ID, Op: WorklistRemove,
			})
		}
		if new.Status == CompanyPending {
			set.Worklist = append(set.Worklist, WorklistDelta{
				Worklist: WorklistPendingCompanies, EntityID: new.ID, Op: WorklistAdd,
			})
		}
		if new.Status == CompanySuspended || new.Status == CompanyDeleted {
			// Warn recruiters their access will be limited. Constraining
			// their accounts stays a separate explicit admin action.
			key := dedupeKey(new.ID, new.Status, new.UpdatedAt)
			if len(old.RecruiterUIDs) == 0 {
				set.Intents = append(set.Intents, NotificationIntent{
					Kind: IntentCompanyRestricted, RecipientID: new.ID,
					EntityKind: EntityCompany, EntityID: new.ID,
					Status: new.Status, DedupeKey: key,
				})
			}
			for _, uid := range old.RecruiterUIDs {
				set.Intents = append(set.Intents, NotificationIntent{
					Kind: IntentCompanyRestricted, RecipientID: uid,
					EntityKind: EntityCompany, EntityID: new.ID,
					Status: new.Status, DedupeKey: key,
				})
			}
		}

	case EntityApplication:
		// Exactly one applicant-facing intent on entering a terminal
		// status. The employer drove the transition, so none go back.
		if IsTerminal(EntityApplication, new.Status) {
			set.Intents = append(set.Intents, NotificationIntent{
				Kind: IntentApplicationStatus, RecipientID: old.ApplicantID,
				EntityKind: EntityApplication, EntityID: new.ID,
				Status: new.Status, DedupeKey: dedupeKey(new.ID, new.Status, new.UpdatedAt),
			})
		}

	case EntityUserAccount:
		// Suspension takes effect through status checks in the other
		// services; no cascades originate here.
	}

	return set
}
