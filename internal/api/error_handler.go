package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

const genericFailure = "Something went wrong!"

type errorResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// NewHTTPErrorHandler returns the fallback for errors handlers did not
// render themselves. Echo errors keep their status and message; known domain
// errors get their status; anything else is a 500 whose body carries the
// error text outside production and a fixed message in production.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c, production)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Msg: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrListNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Authentication failed. Invalid username or password."
	case errors.Is(err, domain.ErrInvalidIDs), errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidPage), errors.Is(err, domain.ErrInvalidReview):
		return http.StatusBadRequest, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if production {
		return http.StatusInternalServerError, genericFailure
	}
	return http.StatusInternalServerError, fmt.Sprintf("unhandled error: %v", err)
}
