package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireOwner lets the request through only when the authenticated username
// equals the named path parameter. It must run after Auth.
func RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get(ContextUsername).(string)
			if username == "" || username != c.Param(param) {
				return c.JSON(http.StatusForbidden, authFailure{Success: false, Msg: "You can only modify your own list."})
			}
			return next(c)
		}
	}
}
