package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// RegisterUserInput carries the data needed to create an account.
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Password  string
}

// UserPage is one page of users plus the total count across all pages.
type UserPage struct {
	TotalCount int64          `json:"total_count"`
	Users      []*domain.User `json:"users"`
}

// UserService implements account management.
type UserService interface {
	GetUsers(ctx context.Context, page, pageSize int) (*UserPage, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// RegisterClient creates a self-registered account with the User role.
	// The password is the client's own choice, so it starts fresh.
	RegisterClient(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	// RegisterEmployee creates an admin-registered account with the
	// Employee role and a stale (admin-assigned) password.
	RegisterEmployee(ctx context.Context, input RegisterUserInput) (*domain.User, error)
}
