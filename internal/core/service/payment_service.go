package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

// BackfillObserver is notified when a created payment could not be linked
// back to its appointment.
type BackfillObserver func(paymentID, appointmentID string, err error)

// PaymentService records payments and aggregates them by month.
type PaymentService struct {
	repo         ports.PaymentRepository
	appointments ports.AppointmentRepository
	onBackfill   BackfillObserver
	log          zerolog.Logger
	now          func() time.Time
}

func NewPaymentService(repo ports.PaymentRepository, appointments ports.AppointmentRepository, onBackfill BackfillObserver, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		repo:         repo,
		appointments: appointments,
		onBackfill:   onBackfill,
		log:          log,
		now:          time.Now,
	}
}

// Create stores a payment and then links it from its appointment. The two
// writes are independent: if the second fails the payment is kept and
// returned, leaving an orphan that can be reconciled later.
func (s *PaymentService) Create(ctx context.Context, in ports.CreatePaymentInput) (*domain.Payment, error) {
	if in.Amount < 0 {
		return nil, domain.Validationf("amount must not be negative")
	}

	method := domain.MethodCash
	if strings.TrimSpace(in.Method) != "" {
		m, err := domain.ParsePaymentMethod(in.Method)
		if err != nil {
			return nil, err
		}
		method = m
	}

	status := domain.PaymentPending
	if strings.TrimSpace(in.Status) != "" {
		st, err := domain.ParsePaymentStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	appointmentID := strings.TrimSpace(in.AppointmentID)
	if appointmentID != "" {
		if _, err := s.appointments.FindByID(ctx, appointmentID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Payment{
		AppointmentID: appointmentID,
		Amount:        in.Amount,
		Method:        method,
		Status:        status,
		PaymentDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	if appointmentID != "" {
		if err := s.appointments.SetPayment(ctx, appointmentID, created.ID); err != nil {
			s.log.Error().Err(err).
				Str("payment_id", created.ID).
				Str("appointment_id", appointmentID).
				Msg("payment back-fill failed")
			if s.onBackfill != nil {
				s.onBackfill(created.ID, appointmentID, err)
			}
		}
	}

	s.log.Info().
		Str("payment_id", created.ID).
		Float64("amount", created.Amount).
		Str("method", string(created.Method)).
		Msg("payment created")
	return created, nil
}

func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context) ([]*domain.Payment, error) {
	return s.repo.List(ctx)
}

// Update merges patch into a payment. The payment date never moves, so a
// payment stays in the month it was taken.
func (s *PaymentService) Update(ctx context.Context, id string, patch ports.PaymentPatch) (*domain.Payment, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return nil, domain.Validationf("amount must not be negative")
		}
		p.Amount = *patch.Amount
	}
	if patch.Method != nil {
		m, err := domain.ParsePaymentMethod(*patch.Method)
		if err != nil {
			return nil, err
		}
		p.Method = m
	}
	if patch.Status != nil {
		st, err := domain.ParsePaymentStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		p.Status = st
	}

	p.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, p)
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("payment_id", id).Msg("payment deleted")
	return nil
}

// MonthlyTotal sums the payments dated within period. An empty month is
// reported as domain.ErrNoPaymentsInPeriod.
func (s *PaymentService) MonthlyTotal(ctx context.Context, period domain.ReportPeriod) (*domain.MonthlyReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	start, end := period.Range()
	items, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNoPaymentsInPeriod
	}

	var total float64
	for _, p := range items {
		total += p.Amount
	}

	return &domain.MonthlyReport{Period: period, Total: total, Items: items}, nil
}
