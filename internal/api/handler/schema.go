package handler

import (
	"bytes"
	"encoding/json"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// errorResponse documents the envelope rendered by the central error handler.
type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"    validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Message   string      `json:"message"`
	User      sessionUser `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expires_in"`
}

// --- Users ---

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type updateRoleRequest struct {
	UserID string `json:"userId" validate:"required,mongodb"`
	Role   string `json:"role"   validate:"required,oneof=customer staff admin"`
}

// --- Appointments ---

type createAppointmentRequest struct {
	CustomerID      string     `json:"customerId"      validate:"omitempty,mongodb"`
	GuestName       string     `json:"name"`
	GuestPhone      string     `json:"phone"`
	StaffID         string     `json:"staffId"         validate:"required,mongodb"`
	ServiceIDs      stringList `json:"serviceId"       validate:"required,min=1,dive,mongodb"`
	AppointmentDate string     `json:"appointmentDate" validate:"required"`
	Status          string     `json:"status"          validate:"omitempty,oneof=pending confirmed completed canceled"`
	Notes           string     `json:"notes"`
}

type updateAppointmentRequest struct {
	CustomerID      *string    `json:"customerId"`
	GuestName       *string    `json:"name"`
	GuestPhone      *string    `json:"phone"`
	StaffID         *string    `json:"staffId"         validate:"omitempty,mongodb"`
	ServiceIDs      stringList `json:"serviceId"       validate:"omitempty,dive,mongodb"`
	AppointmentDate *string    `json:"appointmentDate"`
	Status          *string    `json:"status"          validate:"omitempty,oneof=pending confirmed completed canceled"`
	Notes           *string    `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed canceled"`
}

// --- Payments ---

type createPaymentRequest struct {
	AppointmentID string   `json:"appointment" validate:"omitempty,mongodb"`
	Amount        *float64 `json:"amount"      validate:"required,gte=0"`
	Method        string   `json:"method"      validate:"omitempty,oneof=card cash credit_card"`
	Status        string   `json:"status"      validate:"omitempty,oneof=paid pending failed"`
}

type updatePaymentRequest struct {
	Amount *float64 `json:"amount" validate:"omitempty,gte=0"`
	Method *string  `json:"method" validate:"omitempty,oneof=card cash credit_card"`
	Status *string  `json:"status" validate:"omitempty,oneof=paid pending failed"`
}

type monthlyReportResponse struct {
	Month       int               `json:"month"`
	Year        int               `json:"year"`
	TotalAmount float64           `json:"totalAmount"`
	Payments    []*domain.Payment `json:"payments"`
}

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}
