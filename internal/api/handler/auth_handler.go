package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
)

const (
	msgUserCreated     = "User successfully created."
	msgAuthFailed      = "Authentication failed. Invalid username or password."
	msgUsernameTaken   = "Username already exists."
	msgMissingUserPass = "Username and password are required."
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,password"`
}

// Users dispatches POST /api/users: ?action=register registers, anything
// else logs in.
//
// @Summary      Login or register
// @Description  ?action=register creates an account, anything else logs in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        action  query     string              false  "register to create an account"
// @Param        body    body      credentialsRequest  true   "Credentials"
// @Success      200     {object}  statusResponse
// @Success      201     {object}  statusResponse
// @Failure      400     {object}  statusResponse
// @Failure      401     {object}  statusResponse
// @Router       /api/users [post]
func (h *AuthHandler) Users(c echo.Context) error {
	if c.QueryParam("action") == "register" {
		return h.Register(c)
	}
	return h.Login(c)
}

// Register creates a new user account with empty favorites and watchlist.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, msgMissingUserPass)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, statusResponse{Success: true, Msg: msgUserCreated})
	case errors.Is(err, domain.ErrUserExists):
		return fail(c, http.StatusBadRequest, msgUsernameTaken)
	case errors.Is(err, domain.ErrWeakPassword):
		return fail(c, http.StatusBadRequest, domain.ErrWeakPassword.Error())
	case errors.Is(err, domain.ErrMissingCredentials):
		return fail(c, http.StatusBadRequest, msgMissingUserPass)
	default:
		return err
	}
}

// Login authenticates a user and returns a signed token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgMissingUserPass)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, statusResponse{Success: true, Token: token})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, msgAuthFailed)
	case errors.Is(err, domain.ErrMissingCredentials):
		return fail(c, http.StatusBadRequest, msgMissingUserPass)
	default:
		return err
	}
}
