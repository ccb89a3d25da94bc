package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/barbaria/salon-booking/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

const kindInternal = "internal_failure"

var kinds = []struct {
	err  error
	code int
	name string
}{
	{domain.ErrValidation, http.StatusBadRequest, "validation_error"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"kind": "...", "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Kind: kindForStatus(he.Code), Error: fmt.Sprintf("%v", he.Message)}
	}

	if kind := domain.Kind(err); kind != nil {
		for _, k := range kinds {
			if k.err == kind {
				return k.code, errorResponse{Kind: k.name, Error: err.Error()}
			}
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Kind: kindInternal, Error: "internal server error"}
}

func kindForStatus(code int) string {
	for _, k := range kinds {
		if k.code == code {
			return k.name
		}
	}
	if code >= http.StatusInternalServerError {
		return kindInternal
	}
	return http.StatusText(code)
}
