package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
	"github.com/barbaria/salon-booking/internal/core/security"
)

// Hasher abstracts the password hashing primitive.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// TokenIssuer abstracts session token minting and verification.
type TokenIssuer interface {
	Issue(userID string, role domain.Role) (string, *security.Claims, error)
	Verify(token string) (*security.Identity, error)
	TTL() time.Duration
}

// AuthService implements registration, login and logout.
type AuthService struct {
	repo    ports.UserRepository
	hasher  Hasher
	tokens  TokenIssuer
	revoker ports.TokenRevoker // nil when the deny-list is disabled
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(repo ports.UserRepository, hasher Hasher, tokens TokenIssuer, revoker ports.TokenRevoker, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, revoker: revoker, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || email == "" || in.Password == "" || phone == "" {
		return nil, domain.Validationf("name, email, password and phone are required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session token. Unknown emails
// and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.revoker == nil || token == "" {
		return nil
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id.UserID).Str("token_id", id.TokenID).Msg("token revoked")
	return nil
}
