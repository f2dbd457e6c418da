package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

// dummyHash is compared against when the email is unknown so lookup misses
// cost the same as a wrong password (no user enumeration via timing).
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginGuard throttles repeated failed logins per email. Implementations
// are expected to fail open: an unavailable guard must not block logins.
type LoginGuard interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements login and password update.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	guard  LoginGuard
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, guard LoginGuard, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, guard: guard, log: log}
}

// Authenticate verifies the email/password pair. Unknown email, wrong
// password, and repository failures all collapse into
// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err != domain.ErrUserNotFound {
			s.log.Error().Err(err).Msg("user lookup failed")
		}
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.log.Debug().Str("user_id", user.ID.String()).Msg("credentials verified")
	return user, nil
}

// Login runs the full pipeline: throttle check, credential verification,
// role and freshness reads, token issuance.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.guard != nil {
		blocked, err := s.guard.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login guard unavailable, continuing")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if s.guard != nil && err == domain.ErrInvalidCredentials {
			if gerr := s.guard.RecordFailure(ctx, email); gerr != nil {
				s.log.Warn().Err(gerr).Msg("failed to record login failure")
			}
		}
		return "", err
	}

	roles, err := s.users.GetRoles(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("role lookup failed")
		return "", domain.ErrInvalidCredentials
	}

	fresh, err := s.users.HasFreshPassword(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("freshness lookup failed")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user, fresh, roles)
	if err != nil {
		return "", err
	}

	if s.guard != nil {
		if gerr := s.guard.Reset(ctx, email); gerr != nil {
			s.log.Warn().Err(gerr).Msg("failed to reset login guard")
		}
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return token, nil
}

// UpdatePassword re-verifies the current credentials, persists the new hash
// (atomically flipping the freshness flag), and reissues a token marked
// fresh so the caller does not need a second login round-trip. The identity
// match between caller and target email is enforced at the boundary, before
// this is reached.
//
// Every fallible step runs before the hash write: either the write succeeds
// and the caller gets the new token, or nothing was persisted. A role
// lookup failure here is not a credential failure; it surfaces as-is.
func (s *AuthService) UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) (string, error) {
	user, err := s.Authenticate(ctx, email, currentPassword)
	if err != nil {
		return "", err
	}

	roles, err := s.users.GetRoles(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("role lookup failed during password update")
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user, true, roles)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("password updated")
	return token, nil
}
