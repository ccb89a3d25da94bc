package domain

import (
	"strings"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// validTransitions is only consulted when strict transitions are enabled.
// Completed and canceled are terminal.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
}

// ParseAppointmentStatus returns the status named by s.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	st := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return st, nil
	}
	return "", Validationf("status must be one of: pending confirmed completed canceled")
}

// CanTransitionTo reports whether moving from s to next is allowed by the
// strict workflow. Staying in the same state is always allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is a booking for one staff member and one or more services.
// It belongs either to a registered customer or to a guest identified by
// name and phone, never both.
type Appointment struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customer_id,omitempty"`
	GuestName   string            `json:"guest_name,omitempty"`
	GuestPhone  string            `json:"guest_phone,omitempty"`
	StaffID     string            `json:"staff_id"`
	ServiceIDs  []string          `json:"service_ids"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	PaymentID   string            `json:"payment_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// IsGuest reports whether the appointment was booked without an account.
func (a *Appointment) IsGuest() bool {
	return a.CustomerID == ""
}

// Validate checks the structural invariants of a booking. Reference
// existence is checked by the service layer.
func (a *Appointment) Validate() error {
	hasGuest := a.GuestName != "" || a.GuestPhone != ""
	switch {
	case a.CustomerID != "" && hasGuest:
		return Validationf("provide either customerId or name and phone, not both")
	case a.CustomerID == "" && (a.GuestName == "" || a.GuestPhone == ""):
		return Validationf("either customerId or both name and phone are required")
	case a.StaffID == "":
		return Validationf("staffId is required")
	case len(a.ServiceIDs) == 0:
		return Validationf("at least one serviceId is required")
	case a.ScheduledAt.IsZero():
		return Validationf("appointmentDate is required")
	}
	for _, id := range a.ServiceIDs {
		if id == "" {
			return Validationf("serviceId must not contain empty values")
		}
	}
	if _, err := ParseAppointmentStatus(string(a.Status)); err != nil {
		return err
	}
	return nil
}

// AppointmentView is an appointment with its references resolved for
// display. It is computed on read and never stored.
type AppointmentView struct {
	*Appointment
	Customer *UserSummary `json:"customer,omitempty"`
	Staff    *UserSummary `json:"staff,omitempty"`
	Services []Service    `json:"services"`
}
