package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

// principalKey is the echo context key the decoded principal is stored under.
const principalKey = "principal"

// Auth verifies the bearer token and stores the typed principal in the
// request context. Missing, malformed, expired, or mis-signed tokens all
// stop here with 401 — policy evaluation never sees them.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			principal, err := authz.NewPrincipal(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom extracts the principal stored by Auth. The boolean is false
// when the middleware did not run (or the route is misconfigured).
func PrincipalFrom(c echo.Context) (authz.Principal, bool) {
	p, ok := c.Get(principalKey).(authz.Principal)
	return p, ok
}
