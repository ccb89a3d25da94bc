package ports

import (
	"context"
	"time"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// CreateAppointmentInput carries a new booking. Either CustomerID or both
// guest fields must be set.
type CreateAppointmentInput struct {
	CustomerID  string
	GuestName   string
	GuestPhone  string
	StaffID     string
	ServiceIDs  []string
	ScheduledAt string // RFC 3339
	Status      string // optional, defaults to pending
	Notes       string
}

// AppointmentPatch holds the fields to merge into an appointment. Nil
// fields are left untouched; an empty CustomerID clears the customer so a
// booking can be converted to a guest booking.
type AppointmentPatch struct {
	CustomerID  *string
	GuestName   *string
	GuestPhone  *string
	StaffID     *string
	ServiceIDs  []string
	ScheduledAt *time.Time
	Status      *string
	Notes       *string
}

// AppointmentService is the Appointment Lifecycle Manager.
type AppointmentService interface {
	Create(ctx context.Context, in CreateAppointmentInput) (*domain.Appointment, error)
	Get(ctx context.Context, id string) (*domain.AppointmentView, error)
	List(ctx context.Context) ([]*domain.AppointmentView, error)
	Update(ctx context.Context, id string, patch AppointmentPatch) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}
