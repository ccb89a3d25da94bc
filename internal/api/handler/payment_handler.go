package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/api/metrics"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

// PaymentHandler handles HTTP requests for payments. All routes are
// admin-only.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List handles GET /api/payments.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Payment
// @Failure      403  {object}  errorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/payments/payment?id=.
//
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Payment id"
// @Success      200  {object}  domain.Payment
// @Failure      404  {object}  errorResponse
// @Router       /api/payments/payment [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /api/payments.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), toCreatePaymentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /api/payments/update?id=.
//
// @Summary      Update a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    query     string                true  "Payment id"
// @Param        body  body      updatePaymentRequest  true  "Fields to change"
// @Success      200   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/payments/update [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}

	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), id, ports.PaymentPatch{
		Amount: req.Amount,
		Method: req.Method,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/payments/delete?id=.
//
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Payment id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/payments/delete [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Payment deleted"})
}

// Monthly handles GET /api/payments/monthly?month=&year=.
//
// @Summary      Total of the payments taken in a calendar month
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  true  "Month (1-12)"
// @Param        year   query     int  true  "Four-digit year"
// @Success      200    {object}  monthlyReportResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/payments/monthly [get]
func (h *PaymentHandler) Monthly(c echo.Context) error {
	period, err := domain.ParseReportPeriod(c.QueryParam("month"), c.QueryParam("year"))
	if err != nil {
		metrics.PaymentsMonthlyReportsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	report, err := h.service.MonthlyTotal(c.Request().Context(), period)
	if err != nil {
		result := metrics.ResultFailure
		if errors.Is(err, domain.ErrNoPaymentsInPeriod) {
			result = metrics.ResultEmpty
		}
		metrics.PaymentsMonthlyReportsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.PaymentsMonthlyReportsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, toMonthlyReportResponse(report))
}
