package ports

import (
	"context"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// CreatePaymentInput carries a new payment. Method and Status default to
// cash and pending.
type CreatePaymentInput struct {
	AppointmentID string
	Amount        float64
	Method        string
	Status        string
}

// PaymentPatch holds the fields to merge into a payment. The payment date
// is deliberately absent.
type PaymentPatch struct {
	Amount *float64
	Method *string
	Status *string
}

// PaymentService manages payments and the monthly aggregation.
type PaymentService interface {
	Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
	Update(ctx context.Context, id string, patch PaymentPatch) (*domain.Payment, error)
	Delete(ctx context.Context, id string) error
	MonthlyTotal(ctx context.Context, period domain.ReportPeriod) (*domain.MonthlyReport, error)
}
