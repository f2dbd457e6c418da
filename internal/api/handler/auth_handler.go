package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KiwiKetil/room-scheduler-api/internal/api/metrics"
	"github.com/KiwiKetil/room-scheduler-api/internal/api/middleware"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,roompassword"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates a user and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/v1/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// UpdatePassword lets an authenticated user rotate their own password, or an
// admin rotate any password. The target account is the email in the body, so
// the ownership check runs here rather than in route middleware.
//
// @Summary      Update password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "Password change"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/users/update-password [post]
// @Security     BearerAuth
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !authz.Evaluate(authz.SelfOrAdminByEmail, principal, req.Email) {
		metrics.AuthzDecisionsTotal.WithLabelValues(authz.SelfOrAdminByEmail.String(), "denied").Inc()
		return domain.ErrForbidden
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(authz.SelfOrAdminByEmail.String(), "allowed").Inc()

	token, err := h.authService.UpdatePassword(c.Request().Context(), req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}

	metrics.PasswordUpdatesTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
