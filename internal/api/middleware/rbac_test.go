package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/core/domain"
)

func newGuardContext(claim *domain.Claim) echo.Context {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if claim != nil {
		c.Set(claimKey, claim)
	}
	return c
}

func TestRequireRoles_Allows(t *testing.T) {
	c := newGuardContext(&domain.Claim{ID: "u1", Role: domain.RoleManager})

	called := false
	handler := RequireRoles(domain.RoleAdmin, domain.RoleManager)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRoles_Forbids(t *testing.T) {
	c := newGuardContext(&domain.Claim{ID: "u1", Role: domain.RoleUser})

	handler := RequireRoles(domain.RoleAdmin, domain.RoleManager)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrNoPermissions) {
		t.Fatalf("expected ErrNoPermissions, got %v", err)
	}
}

func TestRequireRoles_Anonymous(t *testing.T) {
	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(newGuardContext(nil))
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("guard refusals must match ErrForbidden")
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(newGuardContext(&domain.Claim{ID: "u1", Role: domain.RoleUser})); err != nil {
		t.Fatalf("any role should pass: %v", err)
	}
	if err := handler(newGuardContext(nil)); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("anonymous should be refused, got %v", err)
	}
}
