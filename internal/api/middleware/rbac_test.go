package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/security"
)

func runGate(t *testing.T, id *security.Identity, required domain.Role) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(IdentityKey, id)
	}

	called := false
	err := RequireRole(required)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRequireRole_Allows(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleStaff, domain.RoleAdmin} {
		called, err := runGate(t, &security.Identity{UserID: "u", Role: role}, domain.RoleStaff)
		if err != nil || !called {
			t.Fatalf("%s: expected next to be called, got %v", role, err)
		}
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	called, err := runGate(t, &security.Identity{UserID: "u", Role: domain.RoleCustomer}, domain.RoleAdmin)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrInsufficientRole) || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRequireRole_WithoutIdentity(t *testing.T) {
	called, err := runGate(t, nil, domain.RoleCustomer)
	if called || !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got called=%v err=%v", called, err)
	}
}
