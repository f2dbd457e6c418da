// Package authz holds the typed principal decoded from a verified token and
// the named access policies evaluated against it. Evaluation is pure: it
// never touches the persistence layer, only the claims the caller presented.
package authz

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidClaims = errors.New("token claims are malformed")

// Claims is the JWT claim set carried by every issued token.
// PasswordUpdated is serialized as the literal strings "true"/"false".
type Claims struct {
	Name            string   `json:"name"`
	Roles           []string `json:"roles"`
	PasswordUpdated string   `json:"passwordUpdated"`
	jwt.RegisteredClaims
}

// Principal is the strongly-typed identity built once per request from a
// verified claim set. Policies operate on this, never on raw claim lookups.
type Principal struct {
	Subject       uuid.UUID
	Name          string
	Roles         []string
	PasswordFresh bool
}

// NewPrincipal validates a decoded claim set and produces the principal.
// The subject must be a UUID, at least one role must be present, and the
// passwordUpdated claim must parse as a boolean.
func NewPrincipal(c *Claims) (Principal, error) {
	if c == nil {
		return Principal{}, ErrInvalidClaims
	}
	sub, err := uuid.Parse(c.Subject)
	if err != nil {
		return Principal{}, ErrInvalidClaims
	}
	if len(c.Roles) == 0 || c.Name == "" {
		return Principal{}, ErrInvalidClaims
	}
	fresh, err := strconv.ParseBool(c.PasswordUpdated)
	if err != nil {
		return Principal{}, ErrInvalidClaims
	}
	return Principal{
		Subject:       sub,
		Name:          c.Name,
		Roles:         c.Roles,
		PasswordFresh: fresh,
	}, nil
}

// HasRole reports whether the principal carries the given role claim.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
