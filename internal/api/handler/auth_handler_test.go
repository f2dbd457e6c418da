package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/KiwiKetil/room-scheduler-api/internal/api"
	"github.com/KiwiKetil/room-scheduler-api/internal/api/handler"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (string, error)
	updatePasswordFn func(ctx context.Context, email, current, next string) (string, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, email, current, next string) (string, error) {
	return s.updatePasswordFn(ctx, email, current, next)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, path, body string, principal *authz.Principal) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set("principal", *principal)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestLogin_Success(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "kari@example.com" || password != "Sommer2024!" {
				t.Fatalf("unexpected credentials: %s / %s", email, password)
			}
			return "signed.jwt.token", nil
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	rec := doJSON(e, h.Login, http.MethodPost, "/login",
		`{"email":"kari@example.com","password":"Sommer2024!"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("unexpected token: %q", resp["token"])
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	rec := doJSON(e, h.Login, http.MethodPost, "/login",
		`{"email":"kari@example.com","password":"wrong"}`, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLogin_Throttled(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrTooManyAttempts
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	rec := doJSON(e, h.Login, http.MethodPost, "/login",
		`{"email":"kari@example.com","password":"Sommer2024!"}`, nil)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestLogin_MalformedEmail(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	rec := doJSON(e, h.Login, http.MethodPost, "/login",
		`{"email":"not-an-email","password":"Sommer2024!"}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdatePassword_Self(t *testing.T) {
	svc := &stubAuthService{
		updatePasswordFn: func(ctx context.Context, email, current, next string) (string, error) {
			if email != "kari@example.com" {
				t.Fatalf("unexpected target: %s", email)
			}
			return "fresh.jwt.token", nil
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	principal := authz.Principal{
		Subject: uuid.New(),
		Name:    "kari@example.com",
		Roles:   []string{domain.RoleUser},
	}
	rec := doJSON(e, h.UpdatePassword, http.MethodPost, "/users/update-password",
		`{"email":"kari@example.com","currentPassword":"OldPass1!","newPassword":"NewPass1!"}`, &principal)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "fresh.jwt.token") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdatePassword_OtherUserForbidden(t *testing.T) {
	svc := &stubAuthService{
		updatePasswordFn: func(ctx context.Context, email, current, next string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	principal := authz.Principal{
		Subject: uuid.New(),
		Name:    "ola@example.com",
		Roles:   []string{domain.RoleUser},
	}
	rec := doJSON(e, h.UpdatePassword, http.MethodPost, "/users/update-password",
		`{"email":"kari@example.com","currentPassword":"OldPass1!","newPassword":"NewPass1!"}`, &principal)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUpdatePassword_AdminForOther(t *testing.T) {
	svc := &stubAuthService{
		updatePasswordFn: func(ctx context.Context, email, current, next string) (string, error) {
			return "fresh.jwt.token", nil
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	principal := authz.Principal{
		Subject: uuid.New(),
		Name:    "admin@example.com",
		Roles:   []string{domain.RoleAdmin},
	}
	rec := doJSON(e, h.UpdatePassword, http.MethodPost, "/users/update-password",
		`{"email":"kari@example.com","currentPassword":"OldPass1!","newPassword":"NewPass1!"}`, &principal)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUpdatePassword_WeakNewPassword(t *testing.T) {
	svc := &stubAuthService{
		updatePasswordFn: func(ctx context.Context, email, current, next string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	principal := authz.Principal{
		Subject: uuid.New(),
		Name:    "kari@example.com",
		Roles:   []string{domain.RoleUser},
	}
	rec := doJSON(e, h.UpdatePassword, http.MethodPost, "/users/update-password",
		`{"email":"kari@example.com","currentPassword":"OldPass1!","newPassword":"weak"}`, &principal)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdatePassword_NoPrincipal(t *testing.T) {
	svc := &stubAuthService{
		updatePasswordFn: func(ctx context.Context, email, current, next string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	e := newTestEcho()
	h := handler.NewAuthHandler(svc)

	rec := doJSON(e, h.UpdatePassword, http.MethodPost, "/users/update-password",
		`{"email":"kari@example.com","currentPassword":"OldPass1!","newPassword":"NewPass1!"}`, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
