package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile_OnlyNameAndPhone(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.add(&domain.User{Name: "Bob", Email: "bob@example.com", Phone: "1", Role: domain.RoleCustomer})
	svc := NewUserService(repo, zerolog.Nop())

	updated, err := svc.UpdateProfile(context.Background(), u.ID, ports.ProfileUpdate{Name: strPtr("Robert"), Phone: strPtr("  ")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Robert" || updated.Phone != "1" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if updated.Role != domain.RoleCustomer || updated.Email != "bob@example.com" {
		t.Fatalf("role and email must be untouched: %+v", updated)
	}
}

func TestUserService_ListStaff(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{Name: "A", Role: domain.RoleCustomer})
	repo.add(&domain.User{Name: "B", Role: domain.RoleStaff})
	repo.add(&domain.User{Name: "C", Role: domain.RoleStaff})
	svc := NewUserService(repo, zerolog.Nop())

	staff, err := svc.ListStaff(context.Background())
	if err != nil {
		t.Fatalf("list staff: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("expected 2 staff, got %d", len(staff))
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	repo := newStubUserRepo()
	admin := repo.add(&domain.User{Name: "Admin", Role: domain.RoleAdmin})
	target := repo.add(&domain.User{Name: "Carol", Role: domain.RoleCustomer})
	svc := NewUserService(repo, zerolog.Nop())

	updated, err := svc.ChangeRole(context.Background(), admin.ID, target.ID, domain.RoleStaff)
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if updated.Role != domain.RoleStaff {
		t.Fatalf("expected staff, got %s", updated.Role)
	}
}

func TestUserService_ChangeRole_Rejections(t *testing.T) {
	repo := newStubUserRepo()
	admin := repo.add(&domain.User{Name: "Admin", Role: domain.RoleAdmin})
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.ChangeRole(context.Background(), admin.ID, admin.ID, domain.RoleCustomer); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for self change, got %v", err)
	}
	if _, err := svc.ChangeRole(context.Background(), admin.ID, "other", domain.Role("owner")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
	if _, err := svc.ChangeRole(context.Background(), admin.ID, "missing", domain.RoleStaff); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	if err := svc.DeleteUser(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
