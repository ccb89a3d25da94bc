package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of a session token.
const DefaultTokenTTL = time.Hour

var errEmptySecret = errors.New("token manager: empty signing secret")

// Claims is the signed payload of a session token.
type Claims struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller attached to a request.
type Identity struct {
	UserID    string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenConfig is read once at startup.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// TokenManager issues and verifies HS256 session tokens. It holds no
// per-token state; every token is verified from its own contents.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a TokenManager.
type Option func(*TokenManager)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) { tm.now = now }
}

// NewTokenManager builds a manager. A non-positive TTL falls back to
// DefaultTokenTTL.
func NewTokenManager(cfg TokenConfig, opts ...Option) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errEmptySecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	tm := &TokenManager{secret: []byte(cfg.Secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// TTL returns the lifetime given to issued tokens.
func (tm *TokenManager) TTL() time.Duration { return tm.ttl }

// Issue signs a token for userID holding role.
func (tm *TokenManager) Issue(userID string, role domain.Role) (string, *Claims, error) {
	now := tm.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Verify checks signature, algorithm, expiry and role, and returns the
// identity the token speaks for. All failures unwrap to
// domain.ErrUnauthorized.
func (tm *TokenManager) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	return &Identity{
		UserID:    claims.UserID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
