package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

// UserService covers profile self-service and admin identity management.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile changes name and phone only. Blank values keep the
// current field.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	clean := ports.ProfileUpdate{
		Name:  nonBlank(update.Name),
		Phone: nonBlank(update.Phone),
	}
	if clean.Name == nil && clean.Phone == nil {
		return s.repo.FindByID(ctx, userID)
	}
	return s.repo.UpdateProfile(ctx, userID, clean)
}

func (s *UserService) ListStaff(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx, domain.RoleStaff)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx, "")
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// ChangeRole sets the role of targetID. The acting admin cannot change
// their own role. The target's current token keeps its old role until
// it expires.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if actorID == targetID {
		return nil, domain.ErrSelfRoleChange
	}

	user, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("actor_id", actorID).
		Str("user_id", targetID).
		Str("role", string(role)).
		Msg("user role changed")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
