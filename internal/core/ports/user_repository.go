package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// UserUpdate carries the mutable profile fields of a user.
type UserUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetRoles returns the role names assigned to the user, in stored order.
	GetRoles(ctx context.Context, id uuid.UUID) ([]string, error)
	// HasFreshPassword reports whether the user has rotated the password
	// since creation or the last admin reset.
	HasFreshPassword(ctx context.Context, id uuid.UUID) (bool, error)
	// UpdatePasswordHash atomically stores the new hash and marks the
	// password as self-chosen.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	// List returns a page of users plus the total count.
	List(ctx context.Context, page, pageSize int) ([]*domain.User, int64, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
