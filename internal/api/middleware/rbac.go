package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/api/metrics"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/security"
)

// RequireRole admits requests whose identity holds at least the required
// role. It must run after Auth.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := security.Authorize(IdentityFrom(c), required); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					metrics.AuthzDenialsTotal.WithLabelValues(string(required)).Inc()
				}
				return err
			}
			return next(c)
		}
	}
}
