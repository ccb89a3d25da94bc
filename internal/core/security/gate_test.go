package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		required domain.Role
		wantErr  error
	}{
		{"customer on customer route", domain.RoleCustomer, domain.RoleCustomer, nil},
		{"customer on staff route", domain.RoleCustomer, domain.RoleStaff, domain.ErrForbidden},
		{"customer on admin route", domain.RoleCustomer, domain.RoleAdmin, domain.ErrForbidden},
		{"staff on staff route", domain.RoleStaff, domain.RoleStaff, nil},
		{"staff on admin route", domain.RoleStaff, domain.RoleAdmin, domain.ErrForbidden},
		{"admin on staff route", domain.RoleAdmin, domain.RoleStaff, nil},
		{"admin on admin route", domain.RoleAdmin, domain.RoleAdmin, nil},
		{"unknown role", domain.Role("guest"), domain.RoleCustomer, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(&Identity{UserID: "u", Role: tt.role}, tt.required)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorize_NoIdentity(t *testing.T) {
	assert.ErrorIs(t, Authorize(nil, domain.RoleCustomer), domain.ErrUnauthorized)
}
