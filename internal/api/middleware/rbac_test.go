package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/base-platform/account-api/internal/core/domain"
)

func requireRequest(t *testing.T, role domain.Role, identity *domain.Identity) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(IdentityKey, *identity)
	}

	called := false
	handler := Require(role)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequire_Unauthenticated(t *testing.T) {
	rec, called := requireRequest(t, domain.RoleUser, nil)
	if called {
		t.Fatalf("handler must not run without an identity")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequire_UserRole(t *testing.T) {
	rec, called := requireRequest(t, domain.RoleUser, &domain.Identity{Username: "alice"})
	if !called {
		t.Fatalf("authenticated user should pass a USER requirement")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequire_AdminRole_Forbidden(t *testing.T) {
	rec, called := requireRequest(t, domain.RoleAdmin, &domain.Identity{Username: "alice"})
	if called {
		t.Fatalf("non-admin must not pass an ADMIN requirement")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequire_AdminRole_Allowed(t *testing.T) {
	rec, called := requireRequest(t, domain.RoleAdmin, &domain.Identity{Username: "root", IsAdmin: true})
	if !called {
		t.Fatalf("admin should pass an ADMIN requirement")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequire_AdminBeforeHandler(t *testing.T) {
	// Rejection happens before the handler body, so a rejected request has
	// no partial side effects.
	sideEffects := 0
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Require(domain.RoleAdmin)(func(c echo.Context) error {
		sideEffects++
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if sideEffects != 0 {
		t.Fatalf("handler ran despite missing authentication")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
