package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviesapp/movies-api/internal/api/middleware"
)

// ContextUsername is the echo context key the Auth middleware fills.
const ContextUsername = middleware.ContextUsername

// ctxUsername returns the authenticated username set by the Auth middleware.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(ContextUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
