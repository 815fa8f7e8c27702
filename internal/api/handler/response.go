package handler

import "github.com/labstack/echo/v4"

// statusResponse is the {success, msg} envelope used by user, list and
// review routes.
type statusResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Token   string `json:"token,omitempty"`
}

// proxyErrorResponse is the body of a failed catalog request.
type proxyErrorResponse struct {
	Error string `json:"error"`
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, statusResponse{Success: false, Msg: msg})
}
