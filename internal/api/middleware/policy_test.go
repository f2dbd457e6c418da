package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

func runPolicy(t *testing.T, policy authz.Policy, principal authz.Principal, paramID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	c.Set(principalKey, principal)

	handler := Require(policy)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequire_AdminAllowed(t *testing.T) {
	p := authz.Principal{Subject: uuid.New(), Name: "admin@example.com", Roles: []string{domain.RoleAdmin}}
	rec := runPolicy(t, authz.AdminOnly, p, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequire_NonAdminForbidden(t *testing.T) {
	p := authz.Principal{Subject: uuid.New(), Name: "ola@example.com", Roles: []string{domain.RoleUser}}
	rec := runPolicy(t, authz.AdminOnly, p, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequire_StaleAdminDeniedFreshPolicy(t *testing.T) {
	p := authz.Principal{Subject: uuid.New(), Name: "admin@example.com", Roles: []string{domain.RoleAdmin}, PasswordFresh: false}
	rec := runPolicy(t, authz.AdminFreshPassword, p, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequire_SelfByIDAllowed(t *testing.T) {
	id := uuid.New()
	p := authz.Principal{Subject: id, Name: "kari@example.com", Roles: []string{domain.RoleUser}}
	rec := runPolicy(t, authz.SelfOrAdminByID, p, id.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequire_OtherUserByIDForbidden(t *testing.T) {
	p := authz.Principal{Subject: uuid.New(), Name: "kari@example.com", Roles: []string{domain.RoleUser}}
	rec := runPolicy(t, authz.SelfOrAdminByID, p, uuid.New().String())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequire_NoPrincipalUnauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Require(authz.AdminOnly)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
