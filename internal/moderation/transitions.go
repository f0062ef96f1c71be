// Status transition table.
//
// Valid moderation graphs:
//
//	Job:     pending ◄──► approved / rejected / suspended (full mesh, no terminal)
//	Company: pending → approved → active; suspended/rejected recoverable;
//	         deleted is terminal; active is reachable only from the
//	         approved family (approved, active)
//	User:    active ◄──► suspended; deleted is terminal
//	Application: Applied → employer-managed statuses → Hired/Rejected;
//	         Withdrawn only from Applied; Withdrawn/Rejected/Hired terminal
//
// Job and Company additionally allow self-transitions (re-affirming the
// current status, e.g. re-approve); the engine treats those as affirms.
package moderation

// legalTransitions lists every allowed distinct (from → to) pair per kind.
var legalTransitions = map[EntityKind]map[Status][]Status{
	EntityJob: {
		JobPending:   {JobApproved, JobRejected, JobSuspended},
		JobApproved:  {JobPending, JobRejected, JobSuspended},
		JobRejected:  {JobPending, JobApproved, JobSuspended},
		JobSuspended: {JobPending, JobApproved, JobRejected},
	},
	EntityCompany: {
		CompanyPending:   {CompanyApproved, CompanyRejected, CompanySuspended, CompanyDeleted},
		CompanyApproved:  {CompanyActive, CompanyPending, CompanyRejected, CompanySuspended, CompanyDeleted},
		CompanyActive:    {CompanyApproved, CompanySuspended, CompanyDeleted},
		CompanyRejected:  {CompanyPending, CompanyApproved, CompanyDeleted},
		CompanySuspended: {CompanyPending, CompanyApproved, CompanyRejected, CompanyDeleted},
		// deleted is terminal — no outgoing transitions
	},
	EntityUserAccount: {
		UserActive:    {UserSuspended, UserDeleted},
		UserSuspended: {UserActive, UserDeleted},
		// deleted is terminal — no outgoing transitions
	},
	EntityApplication: {
		AppApplied:      {AppWithdrawn, AppUnderReview, AppInterviewing, AppOffer, AppRejected, AppHired},
		AppUnderReview:  {AppInterviewing, AppOffer, AppRejected, AppHired},
		AppInterviewing: {AppUnderReview, AppOffer, AppRejected, AppHired},
		AppOffer:        {AppUnderReview, AppInterviewing, AppRejected, AppHired},
		// Withdrawn, Rejected and Hired are terminal — no outgoing transitions
	},
}

// allowsAffirm reports whether a kind accepts from == to as a legal
// re-affirmation of the current status.
func allowsAffirm(kind EntityKind) bool {
	return kind == EntityJob || kind == EntityCompany
}

// IsLegalTransition returns true when moving from → to is permitted by the
// state machine for the given kind, independent of who asks.
func IsLegalTransition(kind EntityKind, from, to Status) bool {
	if from == to {
		// Affirms are legal only for kinds that allow them, and never
		// out of a terminal status.
		if !allowsAffirm(kind) {
			return false
		}
		_, hasOutgoing := legalTransitions[kind][from]
		return hasOutgoing
	}
	for _, s := range legalTransitions[kind][from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no legal transition leaves the status.
func IsTerminal(kind EntityKind, s Status) bool {
	return len(legalTransitions[kind][s]) == 0
}

// LegalTargets returns every status reachable from the given one,
// including the affirm self-edge where the kind allows it. Used to
// populate allowed-action menus.
func LegalTargets(kind EntityKind, from Status) []Status {
	edges, ok := legalTransitions[kind][from]
	if !ok {
		return nil
	}
	out := make([]Status, 0, len(edges)+1)
	if allowsAffirm(kind) {
		out = append(out, from)
	}
	out = append(out, edges...)
	return out
}
