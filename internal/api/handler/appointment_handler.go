package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/api/metrics"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// List handles GET /api/appointments.
//
// @Summary      List appointments with customer, staff and services resolved
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AppointmentView
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/appointments/appointment?id=. Customers may only read
// their own bookings; staff and admins may read any.
//
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Appointment id"
// @Success      200  {object}  domain.AppointmentView
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/appointments/appointment [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !caller.Role.Satisfies(domain.RoleStaff) && view.Appointment.CustomerID != caller.UserID {
		return domain.ErrInsufficientRole
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /api/appointments. Booking is open to guests, so the
// route is not gated.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      createAppointmentRequest  true  "Either customerId or name and phone"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), toCreateAppointmentInput(req))
	if err != nil {
		return err
	}

	booking := "customer"
	if a.IsGuest() {
		booking = "guest"
	}
	metrics.AppointmentsCreatedTotal.WithLabelValues(booking).Inc()
	return c.JSON(http.StatusCreated, a)
}

// Update handles PUT /api/appointments/update?id=.
//
// @Summary      Update an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    query     string                    true  "Appointment id"
// @Param        body  body      updateAppointmentRequest  true  "Fields to change"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/appointments/update [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}

	var req updateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	patch, err := toAppointmentPatch(req)
	if err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// UpdateStatus handles PUT /api/appointments/status?id=.
//
// @Summary      Set the status of an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    query     string               true  "Appointment id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/appointments/status [put]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.service.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	metrics.AppointmentStatusUpdatesTotal.WithLabelValues(string(a.Status)).Inc()
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /api/appointments/delete?id=.
//
// @Summary      Delete an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Appointment id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/appointments/delete [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Appointment deleted"})
}
