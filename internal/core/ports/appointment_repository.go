package ports

import (
	"context"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// AppointmentRepository persists appointments as single documents.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	// Update replaces the mutable fields of an existing appointment.
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	// SetPayment back-fills the payment reference of an appointment.
	SetPayment(ctx context.Context, appointmentID, paymentID string) error
	Delete(ctx context.Context, id string) error
}

// ServiceCatalog resolves service references. Catalog management lives
// outside this core.
type ServiceCatalog interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Service, error)
}
