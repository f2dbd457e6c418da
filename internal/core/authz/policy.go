package authz

import "github.com/KiwiKetil/room-scheduler-api/internal/core/domain"

// Policy enumerates the named access rules endpoints are gated by.
type Policy int

const (
	// AdminOnly requires the Admin role.
	AdminOnly Policy = iota
	// AdminFreshPassword requires Admin plus a self-chosen (non-stale) password.
	AdminFreshPassword
	// SelfOrAdminByID grants admins, or a User whose subject equals the target id.
	SelfOrAdminByID
	// SelfOrAdminByEmail grants admins, or a User whose name claim equals the target email.
	SelfOrAdminByEmail
)

func (p Policy) String() string {
	switch p {
	case AdminOnly:
		return "admin_only"
	case AdminFreshPassword:
		return "admin_fresh_password"
	case SelfOrAdminByID:
		return "self_or_admin_by_id"
	case SelfOrAdminByEmail:
		return "self_or_admin_by_email"
	default:
		return "unknown"
	}
}

type rule func(p Principal, target string) bool

// rules maps each policy to its decision function. The admin branch is
// checked first so ownership comparison is skipped for admins.
var rules = map[Policy]rule{
	AdminOnly: func(p Principal, _ string) bool {
		return p.HasRole(domain.RoleAdmin)
	},
	AdminFreshPassword: func(p Principal, _ string) bool {
		return p.HasRole(domain.RoleAdmin) && p.PasswordFresh
	},
	SelfOrAdminByID: func(p Principal, target string) bool {
		if p.HasRole(domain.RoleAdmin) {
			return true
		}
		return p.HasRole(domain.RoleUser) && p.Subject.String() == target
	},
	SelfOrAdminByEmail: func(p Principal, target string) bool {
		if p.HasRole(domain.RoleAdmin) {
			return true
		}
		return p.HasRole(domain.RoleUser) && target != "" && p.Name == target
	},
}

// Evaluate runs the named policy against the principal and optional target
// identifier (resource id or email, depending on the policy). Unknown
// policies deny.
func Evaluate(policy Policy, p Principal, target string) bool {
	r, ok := rules[policy]
	if !ok {
		return false
	}
	return r(p, target)
}
