package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KiwiKetil/room-scheduler-api/internal/api/metrics"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
)

// Require enforces the named policy against the principal stored by Auth.
// For id-targeted policies the target is taken from the :id route parameter.
// A deny is 403 — distinct from the 401 Auth produces for missing or bad
// tokens.
func Require(policy authz.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			target := ""
			if policy == authz.SelfOrAdminByID {
				target = c.Param("id")
			}

			if !authz.Evaluate(policy, principal, target) {
				metrics.AuthzDecisionsTotal.WithLabelValues(policy.String(), "denied").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			metrics.AuthzDecisionsTotal.WithLabelValues(policy.String(), "allowed").Inc()
			return next(c)
		}
	}
}
