package moderation_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/KishoreKammela/JobBoardly-sub000/internal/moderation"
)

var cascadeNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func transitioned(old moderation.Snapshot, to moderation.Status) moderation.Snapshot {
	new := old
	new.Status = to
	new.UpdatedAt = cascadeNow
	return new
}

// ── Jobs ───────────────────────────────────────────────────────────────────

func TestComputeCascades_JobLeavingPending(t *testing.T) {
	old := jobSnap(moderation.JobPending)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.JobApproved))

	wantWorklist := []moderation.WorklistDelta{
		{Worklist: moderation.WorklistPendingJobs, EntityID: "job-1", Op: moderation.WorklistRemove},
	}
	if !reflect.DeepEqual(set.Worklist, wantWorklist) {
		t.Errorf("worklist deltas = %+v, want %+v", set.Worklist, wantWorklist)
	}

	wantCounters := []moderation.CounterDelta{
		{Counter: moderation.CounterPendingJobs, Scope: "company-1", Delta: -1},
	}
	if !reflect.DeepEqual(set.Counters, wantCounters) {
		t.Errorf("counter deltas = %+v, want %+v", set.Counters, wantCounters)
	}

	if len(set.Intents) != 0 {
		t.Errorf("job approval should produce no intents, got %+v", set.Intents)
	}
}

func TestComputeCascades_JobEnteringPending(t *testing.T) {
	old := jobSnap(moderation.JobApproved)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.JobPending))

	wantWorklist := []moderation.WorklistDelta{
		{Worklist: moderation.WorklistPendingJobs, EntityID: "job-1", Op: moderation.WorklistAdd},
	}
	if !reflect.DeepEqual(set.Worklist, wantWorklist) {
		t.Errorf("worklist deltas = %+v, want %+v", set.Worklist, wantWorklist)
	}

	wantCounters := []moderation.CounterDelta{
		{Counter: moderation.CounterPendingJobs, Scope: "company-1", Delta: 1},
	}
	if !reflect.DeepEqual(set.Counters, wantCounters) {
		t.Errorf("counter deltas = %+v, want %+v", set.Counters, wantCounters)
	}
}

func TestComputeCascades_JobRejectedToSuspendedHasNoPendingEffects(t *testing.T) {
	old := jobSnap(moderation.JobRejected)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.JobSuspended))
	if len(set.Worklist) != 0 || len(set.Counters) != 0 || len(set.Intents) != 0 {
		t.Errorf("rejected → suspended should cascade nothing, got %+v", set)
	}
}

// ── Affirms cascade nothing ────────────────────────────────────────────────

func TestComputeCascades_AffirmIsNoOp(t *testing.T) {
	old := jobSnap(moderation.JobPending)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.JobPending))
	if len(set.Worklist) != 0 || len(set.Counters) != 0 || len(set.Intents) != 0 {
		t.Errorf("pending → pending affirm should cascade nothing, got %+v", set)
	}
}

// ── Companies ──────────────────────────────────────────────────────────────

func TestComputeCascades_CompanySuspendedWarnsRecruiters(t *testing.T) {
	old := companySnap(moderation.CompanyApproved)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.CompanySuspended))

	if len(set.Intents) != 2 {
		t.Fatalf("expected one intent per recruiter, got %+v", set.Intents)
	}
	for i, uid := range []string{"recruiter-1", "recruiter-2"} {
		intent := set.Intents[i]
		if intent.Kind != moderation.IntentCompanyRestricted {
			t.Errorf("intent kind = %q, want %q", intent.Kind, moderation.IntentCompanyRestricted)
		}
		if intent.RecipientID != uid {
			t.Errorf("intent recipient = %q, want %q", intent.RecipientID, uid)
		}
		if intent.DedupeKey == "" {
			t.Error("intent dedupe key should not be empty")
		}
	}
}

func TestComputeCascades_CompanyDeletedWarnsRecruiters(t *testing.T) {
	old := companySnap(moderation.CompanyActive)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.CompanyDeleted))
	if len(set.Intents) != 2 {
		t.Errorf("company deletion should warn every recruiter, got %+v", set.Intents)
	}
}

func TestComputeCascades_CompanyApprovalNotifiesNoOne(t *testing.T) {
	old := companySnap(moderation.CompanyPending)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.CompanyApproved))
	if len(set.Intents) != 0 {
		t.Errorf("company approval should produce no intents, got %+v", set.Intents)
	}
	wantWorklist := []moderation.WorklistDelta{
		{Worklist: moderation.WorklistPendingCompanies, EntityID: "company-1", Op: moderation.WorklistRemove},
	}
	if !reflect.DeepEqual(set.Worklist, wantWorklist) {
		t.Errorf("worklist deltas = %+v, want %+v", set.Worklist, wantWorklist)
	}
}

// ── Applications ───────────────────────────────────────────────────────────

func TestComputeCascades_ApplicationTerminalNotifiesApplicantOnce(t *testing.T) {
	for _, to := range []moderation.Status{moderation.AppWithdrawn, moderation.AppRejected, moderation.AppHired} {
		old := appSnap(moderation.AppApplied)
		set := moderation.ComputeCascades(old, transitioned(old, to))
		if len(set.Intents) != 1 {
			t.Fatalf("application → %s should produce exactly one intent, got %+v", to, set.Intents)
		}
		intent := set.Intents[0]
		if intent.Kind != moderation.IntentApplicationStatus {
			t.Errorf("intent kind = %q, want %q", intent.Kind, moderation.IntentApplicationStatus)
		}
		if intent.RecipientID != "seeker-1" {
			t.Errorf("intent recipient = %q, want the applicant", intent.RecipientID)
		}
	}
}

func TestComputeCascades_ApplicationIntermediateNotifiesNoOne(t *testing.T) {
	old := appSnap(moderation.AppApplied)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.AppUnderReview))
	if len(set.Intents) != 0 {
		t.Errorf("Applied → Under Review should produce no intents, got %+v", set.Intents)
	}
}

// ── User accounts ──────────────────────────────────────────────────────────

func TestComputeCascades_UserAccountCascadesNothing(t *testing.T) {
	old := userSnap("uid-2", moderation.RoleJobSeeker)
	set := moderation.ComputeCascades(old, transitioned(old, moderation.UserSuspended))
	if len(set.Worklist) != 0 || len(set.Counters) != 0 || len(set.Intents) != 0 {
		t.Errorf("user suspension should cascade nothing here, got %+v", set)
	}
}

// ── Idempotence ────────────────────────────────────────────────────────────

func TestComputeCascades_Idempotent(t *testing.T) {
	pairs := []struct {
		old moderation.Snapshot
		to  moderation.Status
	}{
		{jobSnap(moderation.JobPending), moderation.JobApproved},
		{companySnap(moderation.CompanyApproved), moderation.CompanySuspended},
		{appSnap(moderation.AppOffer), moderation.AppHired},
	}
	for _, p := range pairs {
		new := transitioned(p.old, p.to)
		first := moderation.ComputeCascades(p.old, new)
		second := moderation.ComputeCascades(p.old, new)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("ComputeCascades(%s, %s → %s) not idempotent:\nfirst  %+v\nsecond %+v",
				p.old.Kind, p.old.Status, p.to, first, second)
		}
	}
}
