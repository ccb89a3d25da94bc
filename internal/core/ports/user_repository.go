package ports

import (
	"context"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// UserRepository is the Credential Store.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID.
	// Returns domain.ErrUserExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// List returns all users, or only those holding role when it is non-empty.
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ProfileUpdate carries the self-service fields of an identity. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name  *string
	Phone *string
}
