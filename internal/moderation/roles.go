package moderation

import "fmt"

// Role is the single role held by an actor. There is no inheritance:
// each actor has exactly one role, plus optional capability flags.
type Role string

const (
	RoleJobSeeker         Role = "jobSeeker"
	RoleEmployer          Role = "employer"
	RoleAdmin             Role = "admin"
	RoleSuperAdmin        Role = "superAdmin"
	RoleModerator         Role = "moderator"
	RoleSupportAgent      Role = "supportAgent"
	RoleDataAnalyst       Role = "dataAnalyst"
	RoleComplianceOfficer Role = "complianceOfficer"
	RoleSystemMonitor     Role = "systemMonitor"
)

var allRoles = []Role{
	RoleJobSeeker, RoleEmployer, RoleAdmin, RoleSuperAdmin, RoleModerator,
	RoleSupportAgent, RoleDataAnalyst, RoleComplianceOfficer, RoleSystemMonitor,
}

// ParseRole converts a raw string to a Role, returning an error for
// unknown values.
func ParseRole(s string) (Role, error) {
	for _, r := range allRoles {
		if Role(s) == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsAdminLike reports membership in the platform-staff capability group.
// The group gates read visibility only; write capability is decided
// per-entity by the guard.
func (r Role) IsAdminLike() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleModerator, RoleSupportAgent,
		RoleDataAnalyst, RoleComplianceOfficer, RoleSystemMonitor:
		return true
	}
	return false
}

// Actor identifies who is requesting a transition. It is always passed
// explicitly — the engine never reads ambient session state.
type Actor struct {
	ID             string
	Role           Role
	CompanyID      string // set for employer actors
	IsCompanyAdmin bool   // employer sub-capability
}
