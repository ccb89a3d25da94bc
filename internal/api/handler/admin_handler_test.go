package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/api/middleware"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
	"github.com/barbaria/salon-booking/internal/core/security"
)

type stubUserService struct {
	ports.UserService
	profileFn       func(ctx context.Context, userID string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error)
	changeRoleFn    func(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (s *stubUserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, update)
}

func (s *stubUserService) ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
	return s.changeRoleFn(ctx, actorID, targetID, role)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func withIdentity(c echo.Context, userID string, role domain.Role) echo.Context {
	c.Set(middleware.IdentityKey, &security.Identity{UserID: userID, Role: role, TokenID: "jti-1"})
	return c
}

func TestUserHandler_Profile_UsesTokenSubject(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: userID, Role: domain.RoleCustomer}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := withIdentity(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), rec), "u1", domain.RoleCustomer)

	if err := handler.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Profile_NoIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), httptest.NewRecorder())

	if err := handler.Profile(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUserHandler_UpdateProfile_IgnoresRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
			if update.Name == nil || *update.Name != "Ayse K." || update.Phone != nil {
				t.Fatalf("unexpected update: %+v", update)
			}
			return &domain.User{ID: userID, Name: *update.Name, Role: domain.RoleCustomer}, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"name":"Ayse K.","role":"admin"}`
	c := withIdentity(e.NewContext(jsonRequest(http.MethodPut, "/api/user/profile", body), httptest.NewRecorder()), "u1", domain.RoleCustomer)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAdminHandler_UpdateRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		changeRoleFn: func(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
			if actorID != "admin-1" || targetID != staffHex || role != domain.RoleStaff {
				t.Fatalf("unexpected args: %s %s %s", actorID, targetID, role)
			}
			return &domain.User{ID: targetID, Role: role}, nil
		},
	}
	handler := NewAdminHandler(stub)

	body := `{"userId":"` + staffHex + `","role":"staff"}`
	rec := httptest.NewRecorder()
	c := withIdentity(e.NewContext(jsonRequest(http.MethodPut, "/api/admin/update-role", body), rec), "admin-1", domain.RoleAdmin)

	if err := handler.UpdateRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_UpdateRole_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
		svc  error
	}{
		{"unknown role", `{"userId":"` + staffHex + `","role":"user"}`, domain.ErrValidation, nil},
		{"malformed id", `{"userId":"nope","role":"staff"}`, domain.ErrValidation, nil},
		{"self change", `{"userId":"` + staffHex + `","role":"customer"}`, domain.ErrForbidden, domain.ErrSelfRoleChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubUserService{
				changeRoleFn: func(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
					if tt.svc == nil {
						t.Fatalf("should not be called")
					}
					return nil, tt.svc
				},
			}
			c := withIdentity(e.NewContext(jsonRequest(http.MethodPut, "/api/admin/update-role", tt.body), httptest.NewRecorder()), staffHex, domain.RoleAdmin)

			if err := NewAdminHandler(stub).UpdateRole(c); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAdminHandler_DeleteUser_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrUserNotFound
		},
	}
	handler := NewAdminHandler(stub)

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/admin/delete?id="+staffHex, nil), httptest.NewRecorder())

	if err := handler.DeleteUser(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
