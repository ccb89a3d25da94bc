package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

// AppointmentService validates and persists bookings.
type AppointmentService struct {
	repo    ports.AppointmentRepository
	users   ports.UserRepository
	catalog ports.ServiceCatalog
	strict  bool
	log     zerolog.Logger
	now     func() time.Time
}

// NewAppointmentService returns an AppointmentService. When strict is true
// status changes must follow the pending → confirmed → completed workflow;
// otherwise any status may move to any other.
func NewAppointmentService(
	repo ports.AppointmentRepository,
	users ports.UserRepository,
	catalog ports.ServiceCatalog,
	strict bool,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:    repo,
		users:   users,
		catalog: catalog,
		strict:  strict,
		log:     log,
		now:     time.Now,
	}
}

func (s *AppointmentService) Create(ctx context.Context, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	status := domain.StatusPending
	if strings.TrimSpace(in.Status) != "" {
		st, err := domain.ParseAppointmentStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	scheduledAt, err := parseScheduledAt(in.ScheduledAt)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a := &domain.Appointment{
		CustomerID:  strings.TrimSpace(in.CustomerID),
		GuestName:   strings.TrimSpace(in.GuestName),
		GuestPhone:  strings.TrimSpace(in.GuestPhone),
		StaffID:     strings.TrimSpace(in.StaffID),
		ServiceIDs:  trimAll(in.ServiceIDs),
		ScheduledAt: scheduledAt,
		Status:      status,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, a, true, true, true); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", created.ID).
		Str("staff_id", created.StaffID).
		Bool("guest", created.IsGuest()).
		Time("scheduled_at", created.ScheduledAt).
		Msg("appointment created")
	return created, nil
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.AppointmentView, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.expand(ctx, []*domain.Appointment{a})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *AppointmentService) List(ctx context.Context) ([]*domain.AppointmentView, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, items)
}

// Update merges patch into the stored appointment and re-checks every
// invariant on the result.
func (s *AppointmentService) Update(ctx context.Context, id string, patch ports.AppointmentPatch) (*domain.Appointment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := a.Status

	if patch.CustomerID != nil {
		a.CustomerID = strings.TrimSpace(*patch.CustomerID)
	}
	if patch.GuestName != nil {
		a.GuestName = strings.TrimSpace(*patch.GuestName)
	}
	if patch.GuestPhone != nil {
		a.GuestPhone = strings.TrimSpace(*patch.GuestPhone)
	}
	if patch.StaffID != nil {
		a.StaffID = strings.TrimSpace(*patch.StaffID)
	}
	if patch.ServiceIDs != nil {
		a.ServiceIDs = trimAll(patch.ServiceIDs)
	}
	if patch.ScheduledAt != nil {
		a.ScheduledAt = patch.ScheduledAt.UTC()
	}
	if patch.Notes != nil {
		a.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.Status != nil {
		st, err := domain.ParseAppointmentStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		if err := s.checkTransition(prev, st); err != nil {
			return nil, err
		}
		a.Status = st
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, a,
		patch.CustomerID != nil && a.CustomerID != "",
		patch.StaffID != nil,
		patch.ServiceIDs != nil,
	); err != nil {
		return nil, err
	}

	a.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("appointment_id", id).Str("status", string(updated.Status)).Msg("appointment updated")
	return updated, nil
}

// UpdateStatus sets the status of an appointment. Setting the current
// status again succeeds without writing.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	st, err := domain.ParseAppointmentStatus(status)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == st {
		return a, nil
	}
	if err := s.checkTransition(a.Status, st); err != nil {
		return nil, err
	}

	prev := a.Status
	a.Status = st
	a.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", id).
		Str("from", string(prev)).
		Str("to", string(st)).
		Msg("appointment status changed")
	return updated, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("appointment_id", id).Msg("appointment deleted")
	return nil
}

func (s *AppointmentService) checkTransition(from, to domain.AppointmentStatus) error {
	if s.strict && !from.CanTransitionTo(to) {
		return domain.ErrInvalidTransition
	}
	return nil
}

// checkReferences verifies that the selected references point at existing
// entities of the right kind.
func (s *AppointmentService) checkReferences(ctx context.Context, a *domain.Appointment, customer, staff, services bool) error {
	if customer && a.CustomerID != "" {
		if _, err := s.users.FindByID(ctx, a.CustomerID); err != nil {
			return referenceError(err, "customer not found")
		}
	}

	if staff {
		member, err := s.users.FindByID(ctx, a.StaffID)
		if err != nil {
			return referenceError(err, "staff member not found")
		}
		if member.Role != domain.RoleStaff {
			return domain.Validationf("staffId must reference a staff member")
		}
	}

	if services {
		wanted := unique(a.ServiceIDs)
		found, err := s.catalog.FindByIDs(ctx, wanted)
		if err != nil {
			return err
		}
		if len(found) != len(wanted) {
			return domain.NotFoundf("service not found")
		}
	}
	return nil
}

// expand resolves customer, staff and service references for display.
// References to entities deleted since booking are left empty.
func (s *AppointmentService) expand(ctx context.Context, items []*domain.Appointment) ([]*domain.AppointmentView, error) {
	var userIDs, serviceIDs []string
	for _, a := range items {
		if a.CustomerID != "" {
			userIDs = append(userIDs, a.CustomerID)
		}
		userIDs = append(userIDs, a.StaffID)
		serviceIDs = append(serviceIDs, a.ServiceIDs...)
	}

	users := map[string]*domain.User{}
	if len(userIDs) > 0 {
		found, err := s.users.FindByIDs(ctx, unique(userIDs))
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			users[u.ID] = u
		}
	}

	services := map[string]domain.Service{}
	if len(serviceIDs) > 0 {
		found, err := s.catalog.FindByIDs(ctx, unique(serviceIDs))
		if err != nil {
			return nil, err
		}
		for _, svc := range found {
			services[svc.ID] = svc
		}
	}

	views := make([]*domain.AppointmentView, 0, len(items))
	for _, a := range items {
		v := &domain.AppointmentView{
			Appointment: a,
			Staff:       users[a.StaffID].Summary(),
			Services:    make([]domain.Service, 0, len(a.ServiceIDs)),
		}
		if a.CustomerID != "" {
			v.Customer = users[a.CustomerID].Summary()
		}
		for _, id := range a.ServiceIDs {
			if svc, ok := services[id]; ok {
				v.Services = append(v.Services, svc)
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func parseScheduledAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.Validationf("appointmentDate is required")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.Validationf("appointmentDate must be an RFC 3339 timestamp")
	}
	return t.UTC(), nil
}

// referenceError keeps validation failures (malformed ids) and turns
// not-found into a message naming the missing reference.
func referenceError(err error, msg string) error {
	if domain.Kind(err) == domain.ErrNotFound {
		return domain.NotFoundf("%s", msg)
	}
	return err
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
