package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/barbaria/salon-booking/internal/api/metrics"
	"github.com/barbaria/salon-booking/internal/api/middleware"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

// NewAuthHandler returns an AuthHandler. secureCookie sets the Secure flag
// on the session cookie.
func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Register creates a new customer account.
//
// @Summary      Register a new customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthRegistrationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		result := metrics.ResultFailure
		if errors.Is(err, domain.ErrUserExists) {
			result = metrics.ResultConflict
		}
		metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.AuthRegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusCreated, registerResponse{Message: "User registered successfully", User: user})
}

// Login authenticates a user, sets the session cookie and returns the token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthLoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}
	metrics.AuthLoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   res.ExpiresIn,
		Expires:  time.Now().Add(time.Duration(res.ExpiresIn) * time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User: sessionUser{
			ID:    res.User.ID,
			Name:  res.User.Name,
			Email: res.User.Email,
			Role:  res.User.Role,
		},
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
	})
}

// Logout clears the session cookie and, when a deny-list is configured,
// revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.TokenFromRequest(c)); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}
