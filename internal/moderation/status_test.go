package moderation_test

import (
	"testing"

	"github.com/KishoreKammela/JobBoardly-sub000/internal/moderation"
)

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	cases := map[moderation.EntityKind][]string{
		moderation.EntityJob:         {"pending", "approved", "rejected", "suspended"},
		moderation.EntityCompany:     {"pending", "approved", "rejected", "suspended", "active", "deleted"},
		moderation.EntityUserAccount: {"active", "suspended", "deleted"},
		moderation.EntityApplication: {
			"Applied", "Under Review", "Interviewing", "Offer Extended",
			"Withdrawn by Applicant", "Rejected By Company", "Hired",
		},
	}
	for kind, values := range cases {
		for _, s := range values {
			got, err := moderation.ParseStatus(kind, s)
			if err != nil {
				t.Errorf("ParseStatus(%s, %q) returned unexpected error: %v", kind, s, err)
			}
			if string(got) != s {
				t.Errorf("ParseStatus(%s, %q) = %q, want %q", kind, s, got, s)
			}
		}
	}
}

func TestParseStatus_RejectsOtherKindsValues(t *testing.T) {
	// Status domains are closed per kind — a valid user status is not a
	// valid job status, and display-cased application statuses never
	// leak into the lowercase domains.
	cases := []struct {
		kind moderation.EntityKind
		s    string
	}{
		{moderation.EntityJob, "active"},
		{moderation.EntityJob, "deleted"},
		{moderation.EntityJob, "Hired"},
		{moderation.EntityUserAccount, "pending"},
		{moderation.EntityUserAccount, "approved"},
		{moderation.EntityApplication, "pending"},
		{moderation.EntityApplication, "applied"},
		{moderation.EntityApplication, "hired"},
		{moderation.EntityCompany, "Applied"},
	}
	for _, c := range cases {
		if _, err := moderation.ParseStatus(c.kind, c.s); err == nil {
			t.Errorf("ParseStatus(%s, %q) expected error, got nil", c.kind, c.s)
		}
	}
}

func TestParseStatus_EmptyAndUnknown(t *testing.T) {
	for _, kind := range []moderation.EntityKind{
		moderation.EntityJob, moderation.EntityCompany,
		moderation.EntityUserAccount, moderation.EntityApplication,
	} {
		if _, err := moderation.ParseStatus(kind, ""); err == nil {
			t.Errorf("ParseStatus(%s, \"\") expected error, got nil", kind)
		}
		if _, err := moderation.ParseStatus(kind, "UNKNOWN"); err == nil {
			t.Errorf("ParseStatus(%s, \"UNKNOWN\") expected error, got nil", kind)
		}
	}
}

// ── ParseRole ──────────────────────────────────────────────────────────────

func TestParseRole_ValidValues(t *testing.T) {
	valid := []string{
		"jobSeeker", "employer", "admin", "superAdmin", "moderator",
		"supportAgent", "dataAnalyst", "complianceOfficer", "systemMonitor",
	}
	for _, s := range valid {
		got, err := moderation.ParseRole(s)
		if err != nil {
			t.Errorf("ParseRole(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseRole(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseRole_InvalidValues(t *testing.T) {
	for _, s := range []string{"", "Admin", "SUPERADMIN", "root", "support agent"} {
		if _, err := moderation.ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) expected error, got nil", s)
		}
	}
}

// ── IsAdminLike ────────────────────────────────────────────────────────────

func TestIsAdminLike(t *testing.T) {
	adminLike := []moderation.Role{
		moderation.RoleAdmin, moderation.RoleSuperAdmin, moderation.RoleModerator,
		moderation.RoleSupportAgent, moderation.RoleDataAnalyst,
		moderation.RoleComplianceOfficer, moderation.RoleSystemMonitor,
	}
	for _, r := range adminLike {
		if !r.IsAdminLike() {
			t.Errorf("IsAdminLike(%s) should be true", r)
		}
	}
	for _, r := range []moderation.Role{moderation.RoleJobSeeker, moderation.RoleEmployer} {
		if r.IsAdminLike() {
			t.Errorf("IsAdminLike(%s) should be false", r)
		}
	}
}

// ── ParseEntityKind ────────────────────────────────────────────────────────

func TestParseEntityKind(t *testing.T) {
	valid := []string{"job", "company", "userAccount", "application", "legalDocument"}
	for _, s := range valid {
		if _, err := moderation.ParseEntityKind(s); err != nil {
			t.Errorf("ParseEntityKind(%q) returned unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "jobs", "user", "Company"} {
		if _, err := moderation.ParseEntityKind(s); err == nil {
			t.Errorf("ParseEntityKind(%q) expected error, got nil", s)
		}
	}
}
