package ports

import (
	"context"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// AuthService implements the login and password-update flows.
type AuthService interface {
	// Authenticate verifies credentials and returns the account. Unknown
	// email and wrong password are indistinguishable: both yield
	// domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed token embedding the
	// user's roles and password-freshness state.
	Login(ctx context.Context, email, password string) (string, error)
	// UpdatePassword re-verifies the current password, persists the new
	// hash, and returns a fresh token with passwordUpdated = "true".
	UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) (string, error)
}
