package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/barbaria/salon-booking/internal/api/metrics"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
	"github.com/barbaria/salon-booking/internal/core/security"
)

const (
	// IdentityKey is the echo.Context key holding the *security.Identity of
	// an authenticated request.
	IdentityKey = "identity"
	// TokenCookie is the session cookie set at login.
	TokenCookie = "token"
)

// TokenVerifier verifies a session token.
type TokenVerifier interface {
	Verify(token string) (*security.Identity, error)
}

// Auth verifies the session token and stores the caller's identity in the
// context. The token is read from the session cookie first, then from a
// Bearer Authorization header. revoker may be nil.
func Auth(verifier TokenVerifier, revoker ports.TokenRevoker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := TokenFromRequest(c)
			if raw == "" {
				metrics.AuthTokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired"
				}
				metrics.AuthTokenRejectionsTotal.WithLabelValues(reason).Inc()
				return err
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(c.Request().Context(), id.TokenID)
				switch {
				case err != nil:
					log.Warn().Err(err).Str("token_id", id.TokenID).Msg("deny-list lookup failed, allowing request")
				case revoked:
					metrics.AuthTokenRejectionsTotal.WithLabelValues("revoked").Inc()
					return domain.ErrTokenRevoked
				}
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}

// TokenFromRequest returns the raw session token of the request, or "".
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// IdentityFrom returns the identity stored by Auth, or nil.
func IdentityFrom(c echo.Context) *security.Identity {
	id, _ := c.Get(IdentityKey).(*security.Identity)
	return id
}
