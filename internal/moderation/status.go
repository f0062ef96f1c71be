// Package moderation implements the status lifecycle state machine for the
// job board: which status transitions exist per entity kind, which actor
// roles may drive them, and which derived effects (worklist membership,
// counters, notification intents) each transition produces.
//
// The core (status, transitions, guard, cascades, engine) is pure and does
// no I/O — it can be called from any transport and is safe under concurrent
// callers. Persistence and dispatch live behind the collaborator interfaces
// consumed by Service.
package moderation

import "fmt"

// EntityKind names one of the moderated entity families.
type EntityKind string

const (
	EntityJob         EntityKind = "job"
	EntityCompany     EntityKind = "company"
	EntityUserAccount EntityKind = "userAccount"
	EntityApplication EntityKind = "application"

	// EntityLegalDocument is a degenerate kind with no status machine.
	// It exists only so legal-document edits share the guard contract.
	EntityLegalDocument EntityKind = "legalDocument"
)

// ParseEntityKind converts a raw path segment to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(s)
	switch k {
	case EntityJob, EntityCompany, EntityUserAccount, EntityApplication, EntityLegalDocument:
		return k, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Status values mirror the status column of the corresponding table.
// Each entity kind has its own closed value set; a Status is only
// meaningful paired with its EntityKind.
type Status string

// Job statuses. Every job is created pending by its owning employer.
const (
	JobPending   Status = "pending"
	JobApproved  Status = "approved"
	JobRejected  Status = "rejected"
	JobSuspended Status = "suspended"
)

// Company statuses. "active" is reachable only from the approved family;
// "deleted" is terminal (soft delete — the row is never removed).
const (
	CompanyPending   Status = "pending"
	CompanyApproved  Status = "approved"
	CompanyRejected  Status = "rejected"
	CompanySuspended Status = "suspended"
	CompanyActive    Status = "active"
	CompanyDeleted   Status = "deleted"
)

// User account statuses. "deleted" is terminal; a deleted account can no
// longer authenticate.
const (
	UserActive    Status = "active"
	UserSuspended Status = "suspended"
	UserDeleted   Status = "deleted"
)

// Application statuses. Values match the gateway's display strings.
// Withdrawn/Rejected/Hired are terminal.
const (
	AppApplied      Status = "Applied"
	AppUnderReview  Status = "Under Review"
	AppInterviewing Status = "Interviewing"
	AppOffer        Status = "Offer Extended"
	AppWithdrawn    Status = "Withdrawn by Applicant"
	AppRejected     Status = "Rejected By Company"
	AppHired        Status = "Hired"
)

// statusDomains lists the closed value set per entity kind.
var statusDomains = map[EntityKind][]Status{
	EntityJob:         {JobPending, JobApproved, JobRejected, JobSuspended},
	EntityCompany:     {CompanyPending, CompanyApproved, CompanyRejected, CompanySuspended, CompanyActive, CompanyDeleted},
	EntityUserAccount: {UserActive, UserSuspended, UserDeleted},
	EntityApplication: {AppApplied, AppUnderReview, AppInterviewing, AppOffer, AppWithdrawn, AppRejected, AppHired},
}

// ParseStatus converts a raw string to a Status for the given kind,
// returning an error for values outside the kind's closed domain.
func ParseStatus(kind EntityKind, s string) (Status, error) {
	for _, v := range statusDomains[kind] {
		if Status(s) == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown %s status %q", kind, s)
}

// Statuses returns the full status domain of a kind.
func Statuses(kind EntityKind) []Status {
	domain := statusDomains[kind]
	out := make([]Status, len(domain))
	copy(out, domain)
	return out
}

// employerManaged reports whether an application status is driven by the
// owning company's recruiters (everything except the applicant-only
// withdrawal).
func employerManaged(s Status) bool {
	switch s {
	case AppUnderReview, AppInterviewing, AppOffer, AppRejected, AppHired:
		return true
	}
	return false
}
