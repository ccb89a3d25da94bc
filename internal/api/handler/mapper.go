package handler

import (
	"strings"
	"time"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

// --- Request → Service input ---

func toCreateAppointmentInput(req createAppointmentRequest) ports.CreateAppointmentInput {
	return ports.CreateAppointmentInput{
		CustomerID:  req.CustomerID,
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		StaffID:     req.StaffID,
		ServiceIDs:  req.ServiceIDs,
		ScheduledAt: req.AppointmentDate,
		Status:      req.Status,
		Notes:       req.Notes,
	}
}

func toAppointmentPatch(req updateAppointmentRequest) (ports.AppointmentPatch, error) {
	patch := ports.AppointmentPatch{
		CustomerID: req.CustomerID,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		StaffID:    req.StaffID,
		ServiceIDs: req.ServiceIDs,
		Status:     req.Status,
		Notes:      req.Notes,
	}
	if req.AppointmentDate != nil {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.AppointmentDate))
		if err != nil {
			return ports.AppointmentPatch{}, domain.Validationf("appointmentDate must be an RFC 3339 timestamp")
		}
		patch.ScheduledAt = &t
	}
	return patch, nil
}

func toCreatePaymentInput(req createPaymentRequest) ports.CreatePaymentInput {
	in := ports.CreatePaymentInput{
		AppointmentID: req.AppointmentID,
		Method:        req.Method,
		Status:        req.Status,
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	return in
}

// --- Service output → Response ---

func toMonthlyReportResponse(r *domain.MonthlyReport) monthlyReportResponse {
	return monthlyReportResponse{
		Month:       r.Period.Month,
		Year:        r.Period.Year,
		TotalAmount: r.Total,
		Payments:    r.Items,
	}
}
