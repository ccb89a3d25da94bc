package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/api/middleware"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/security"
)

// ctxIdentity returns the identity injected by the Auth middleware. Its
// absence means the route was registered without Auth, which is treated as
// an unauthenticated request rather than a panic.
func ctxIdentity(c echo.Context) (*security.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil || id.UserID == "" {
		return nil, domain.ErrMissingToken
	}
	return id, nil
}

// queryID returns the required "id" query parameter.
func queryID(c echo.Context) (string, error) {
	id := c.QueryParam("id")
	if id == "" {
		return "", domain.Validationf("id query parameter is required")
	}
	return id, nil
}
