package security

import "github.com/barbaria/salon-booking/internal/core/domain"

// Authorize decides whether id may use a route requiring the given minimum
// role. It trusts the role embedded in the token, so a role change only
// takes effect once the holder logs in again.
func Authorize(id *Identity, required domain.Role) error {
	if id == nil {
		return domain.ErrMissingToken
	}
	if !id.Role.Satisfies(required) {
		return domain.ErrInsufficientRole
	}
	return nil
}
