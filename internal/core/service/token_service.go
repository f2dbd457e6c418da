package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// tokenTTL is the fixed validity window for issued tokens.
const tokenTTL = 240 * time.Minute

// TokenConfig holds the signing settings. All three fields are required;
// Validate is called once at startup and again on every issuance so a
// misconfigured process can never emit an unverifiable token.
type TokenConfig struct {
	Key      string
	Issuer   string
	Audience string
}

// Validate returns a domain.ErrMissingConfig error naming the first absent
// setting.
func (c TokenConfig) Validate() error {
	switch {
	case c.Key == "":
		return fmt.Errorf("%w: Jwt:Key", domain.ErrMissingConfig)
	case c.Issuer == "":
		return fmt.Errorf("%w: Jwt:Issuer", domain.ErrMissingConfig)
	case c.Audience == "":
		return fmt.Errorf("%w: Jwt:Audience", domain.ErrMissingConfig)
	}
	return nil
}

// TokenService issues and verifies HS256-signed bearer tokens.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue signs a token embedding the user's id, email, roles (order
// preserved) and password-freshness state, valid for tokenTTL from now.
func (s *TokenService) Issue(user *domain.User, passwordFresh bool, roles []string) (string, error) {
	if user == nil {
		return "", domain.ErrUserRequired
	}
	if len(roles) == 0 {
		return "", domain.ErrRolesRequired
	}
	if err := s.cfg.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := authz.Claims{
		Name:            user.Email,
		Roles:           roles,
		PasswordUpdated: strconv.FormatBool(passwordFresh),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.cfg.Key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature, expiry, issuer and audience, and returns
// the decoded claim set. Any failure yields jwt's own error; callers map it
// to an unauthenticated response.
func (s *TokenService) Parse(token string) (*authz.Claims, error) {
	claims := &authz.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Key), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
