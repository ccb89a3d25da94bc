package ports

import (
	"context"
	"time"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// PaymentRepository persists payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	Delete(ctx context.Context, id string) error
	// FindByDateRange returns payments whose payment date is in [start, end).
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Payment, error)
}
