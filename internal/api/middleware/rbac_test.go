package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
)

type stubGuard struct {
	decision domain.Decision
	required domain.Role
}

func (g *stubGuard) RequireRole(_ context.Context, _ *domain.SessionClaims, required domain.Role) domain.Decision {
	g.required = required
	return g.decision
}

type stubResolver struct {
	identity *domain.Identity
}

func (r *stubResolver) Current(context.Context, *domain.SessionClaims) *domain.Identity {
	return r.identity
}

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRole_Allows(t *testing.T) {
	c, rec := newContext()
	user := &domain.Identity{ID: "a", Role: domain.RoleAdmin}
	guard := &stubGuard{decision: domain.Decision{Authorized: true, User: user}}

	called := false
	handler := RequireRole(guard, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		if IdentityFrom(c) != user {
			t.Fatalf("identity not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if guard.required != domain.RoleAdmin {
		t.Fatalf("guard asked for %s", guard.required)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	c, _ := newContext()
	guard := &stubGuard{decision: domain.Decision{User: &domain.Identity{ID: "u", Role: domain.RoleUser}}}

	handler := RequireRole(guard, domain.RoleSuperuser)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err.Error() != "Unauthorized - Superuser access required" {
		t.Fatalf("unexpected reason %q", err.Error())
	}
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	c, _ := newContext()
	handler := RequireRole(&stubGuard{}, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireIdentity(t *testing.T) {
	c, _ := newContext()
	user := &domain.Identity{ID: "u", Role: domain.RoleUser}

	handler := RequireIdentity(&stubResolver{identity: user})(func(c echo.Context) error {
		if IdentityFrom(c) != user {
			t.Fatalf("identity not set")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c, _ = newContext()
	handler = RequireIdentity(&stubResolver{})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
