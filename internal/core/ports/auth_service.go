package ports

import (
	"context"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// RegisterInput carries the self-registration fields. The role is never
// taken from the caller.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresIn int // seconds
	User      *domain.User
}

// AuthService handles registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout revokes token when a deny-list is configured. It never fails
	// for an invalid or expired token; there is nothing left to revoke.
	Logout(ctx context.Context, token string) error
}

// UserService covers profile self-service and admin identity management.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	ListStaff(ctx context.Context) ([]*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// ChangeRole is admin-only; actorID is the admin performing it.
	ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
