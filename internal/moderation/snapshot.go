package moderation

import "time"

// Snapshot is the slice of a persisted entity this core reads and
// rewrites. One struct covers all kinds; fields outside a kind's shape
// stay zero. UpdatedAt doubles as the optimistic-concurrency version
// token: commits are conditional on it being unchanged since the read.
type Snapshot struct {
	ID               string
	Kind             EntityKind
	Status           Status
	ModerationReason string
	UpdatedAt        time.Time

	// Job
	PostedByID string

	// Job + Application
	CompanyID string

	// Company
	RecruiterUIDs []string

	// UserAccount (ID holds the uid)
	Role Role

	// Application
	JobID       string
	ApplicantID string
}

// AuditEntry is one moderation history record appended to the entity.
type AuditEntry struct {
	Reason    string    `json:"reason,omitempty"`
	ActorRole Role      `json:"actorRole"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	At        time.Time `json:"at"`
}
