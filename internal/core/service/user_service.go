package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserService implements account management.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) GetUsers(ctx context.Context, page, pageSize int) (*ports.UserPage, error) {
	page, pageSize = clampPage(page, pageSize)
	users, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{TotalCount: total, Users: users}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, update ports.UserUpdate) (*domain.User, error) {
	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id.String()).Msg("user updated")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

// RegisterClient creates a self-registered account with the User role. The
// password was chosen by the account holder, so it starts fresh.
func (s *UserService) RegisterClient(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	return s.register(ctx, input, []string{domain.RoleUser}, true)
}

// RegisterEmployee creates an admin-registered account with the Employee
// role. The password was assigned by an administrator, so the account is
// blocked from sensitive operations until it rotates the password.
func (s *UserService) RegisterEmployee(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	return s.register(ctx, input, []string{domain.RoleEmployee}, false)
}

func (s *UserService) register(ctx context.Context, input ports.RegisterUserInput, roles []string, passwordFresh bool) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:              uuid.New(),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		Email:           input.Email,
		PasswordHash:    string(hash),
		PasswordUpdated: passwordFresh,
		Roles:           roles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID.String()).Strs("roles", roles).Msg("user registered")
	return created, nil
}

// clampPage normalizes pagination parameters.
func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
