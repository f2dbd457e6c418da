package ports

import (
	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	// Issue signs a token for the user. Fails with domain.ErrUserRequired
	// on a nil user, domain.ErrRolesRequired on an empty role set, and
	// domain.ErrMissingConfig when signing settings are absent.
	Issue(user *domain.User, passwordFresh bool, roles []string) (string, error)
	// Parse verifies signature, expiry, issuer and audience, and returns
	// the decoded claim set.
	Parse(token string) (*authz.Claims, error)
}
