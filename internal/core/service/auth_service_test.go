package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
	"github.com/barbaria/salon-booking/internal/core/security"
)

type stubUserRepo struct {
	users     map[string]*domain.User // keyed by ID
	nextID    int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.nextID++
	c := cloneUser(u)
	if c.ID == "" {
		c.ID = "user-" + strconv.Itoa(r.nextID)
	}
	r.users[c.ID] = c
	return cloneUser(c)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.err != nil {
		return r.err
	}
	if r.revoked == nil {
		r.revoked = make(map[string]time.Time)
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, r.err
}

func newTestTokens(t *testing.T) *security.TokenManager {
	t.Helper()
	tm, err := security.NewTokenManager(security.TokenConfig{Secret: "secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return tm
}

func newTestAuthService(t *testing.T, repo *stubUserRepo, revoker ports.TokenRevoker) (*AuthService, *security.TokenManager) {
	tokens := newTestTokens(t)
	return NewAuthService(repo, security.NewPasswordHasher(bcrypt.MinCost), tokens, revoker, zerolog.Nop()), tokens
}

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{Name: "Alice", Email: "Alice@Example.com ", Password: "pass123", Phone: "+905551112233"}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo, nil)

	user, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected default role customer, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo, nil)

	in := validRegistration()
	in.Phone = "  "
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should have been stored")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo, nil)

	if _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	dup := validRegistration()
	dup.Email = "ALICE@example.com"
	dup.Password = "different"
	_, err := svc.Register(context.Background(), dup)
	if !errors.Is(err, domain.ErrUserExists) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Register_StoreConflictIsConflict(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = domain.ErrUserExists
	svc, _ := newTestAuthService(t, repo, nil)

	if _, err := svc.Register(context.Background(), validRegistration()); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict from store race, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo, nil)

	registered, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" || res.ExpiresIn != 3600 {
		t.Fatalf("unexpected login result: %+v", res)
	}

	id, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if id.UserID != registered.ID || id.Role != domain.RoleCustomer {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo, nil)
	_, _ = svc.Register(context.Background(), validRegistration())

	for _, pw := range []string{"pass124", "Pass123", "pass12", ""} {
		if _, err := svc.Login(context.Background(), "alice@example.com", pw); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("password %q: expected ErrInvalidCredentials, got %v", pw, err)
		}
	}
}

func TestAuthService_Login_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo, nil)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_WithoutRevokerIsNoop(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo, nil)
	token, _, _ := tokens.Issue("user-1", domain.RoleCustomer)

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := tokens.Verify(token); err != nil {
		t.Fatalf("token should stay valid until expiry: %v", err)
	}
}

func TestAuthService_Logout_RevokesUntilExpiry(t *testing.T) {
	repo := newStubUserRepo()
	revoker := &stubRevoker{}
	svc, tokens := newTestAuthService(t, repo, revoker)
	token, claims, _ := tokens.Issue("user-1", domain.RoleCustomer)

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	until, ok := revoker.revoked[claims.ID]
	if !ok {
		t.Fatalf("expected token %s to be revoked", claims.ID)
	}
	if !until.Equal(claims.ExpiresAt.Time) {
		t.Fatalf("expected revocation until %v, got %v", claims.ExpiresAt.Time, until)
	}
}

func TestAuthService_Logout_InvalidTokenIsIgnored(t *testing.T) {
	repo := newStubUserRepo()
	revoker := &stubRevoker{}
	svc, _ := newTestAuthService(t, repo, revoker)

	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout with garbage token should succeed, got %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("nothing should have been revoked")
	}
}
