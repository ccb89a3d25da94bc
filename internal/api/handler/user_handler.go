package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/core/ports"
)

// UserHandler serves the caller's own profile and the public staff list.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile changes the caller's name and/or phone. Email, password and
// role are not editable here.
//
// @Summary      Update own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), id.UserID, ports.ProfileUpdate{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListStaff returns every staff member.
//
// @Summary      List staff
// @Tags         user
// @Produce      json
// @Success      200  {array}   domain.User
// @Router       /api/user/staff [get]
func (h *UserHandler) ListStaff(c echo.Context) error {
	staff, err := h.users.ListStaff(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staff)
}
