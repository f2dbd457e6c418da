package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role names carried as token claims. An account holds one or more of these;
// an account with none cannot be issued a token.
const (
	RoleAdmin    = "Admin"
	RoleUser     = "User"
	RoleEmployee = "Employee"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// Token issuance argument errors. These indicate caller bugs or broken
// account data, not recoverable request failures.
var ErrUserRequired = errors.New("an authenticated user is required to issue a token")
var ErrRolesRequired = errors.New("at least one role is required to issue a token")

// ErrMissingConfig wraps the name of the absent setting, e.g. "Jwt:Key".
var ErrMissingConfig = errors.New("missing configuration")

// User models an account that can authenticate against the API.
// PasswordHash is a bcrypt hash; the plaintext is never stored.
// PasswordUpdated is false while the account still carries an
// admin-assigned password, and flips to true on the first self-initiated
// password change.
type User struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	PasswordUpdated bool      `json:"password_updated"`
	Roles           []string  `json:"roles"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
