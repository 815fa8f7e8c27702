package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
)

const (
	msgUserNotFound = "User not found."
	msgNotYourList  = "You can only modify your own list."
)

// ListHandler serves one list kind (favorites or watchlist).
type ListHandler struct {
	kind    domain.ListKind
	service ports.ListService
}

func NewListHandler(kind domain.ListKind, service ports.ListService) *ListHandler {
	return &ListHandler{kind: kind, service: service}
}

// Get returns a user's list.
//
// @Summary      Get a user's favorites or watchlist
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        list      path      string  true  "favorites or watchlist"
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.MovieList
// @Failure      401,404   {object}  statusResponse
// @Router       /api/{list}/{username} [get]
func (h *ListHandler) Get(c echo.Context) error {
	list, err := h.service.Get(c.Request().Context(), h.kind, c.Param("username"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Add puts one or more movie ids into the caller's list and returns the
// resulting ids.
//
// @Summary      Add movies to a list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        list      path  string  true  "favorites or watchlist"
// @Param        username  path  string  true  "Username"
// @Param        body      body  []int   true  "A movie id or an array of ids"
// @Success      200  {array}   int
// @Failure      400,401,403  {object}  statusResponse
// @Router       /api/{list}/{username} [put]
func (h *ListHandler) Add(c echo.Context) error {
	return h.mutate(c, h.service.Add)
}

// Remove deletes one or more movie ids from the caller's list. Ids not in the
// list are ignored.
//
// @Summary      Remove movies from a list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        list      path  string  true  "favorites or watchlist"
// @Param        username  path  string  true  "Username"
// @Param        body      body  []int   true  "A movie id or an array of ids"
// @Success      200  {array}   int
// @Failure      400,401,403,404  {object}  statusResponse
// @Router       /api/{list}/{username} [delete]
func (h *ListHandler) Remove(c echo.Context) error {
	return h.mutate(c, h.service.Remove)
}

type listMutation func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error)

func (h *ListHandler) mutate(c echo.Context, op listMutation) error {
	actor, err := ctxUsername(c)
	if err != nil {
		return err
	}
	username := c.Param("username")

	ids, err := decodeMovieIDs(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	list, err := op(c.Request().Context(), h.kind, actor, username, ids)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, list.Movies)
}

func (h *ListHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		return fail(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, http.StatusForbidden, msgNotYourList)
	case errors.Is(err, domain.ErrInvalidIDs):
		return fail(c, http.StatusBadRequest, domain.ErrInvalidIDs.Error())
	default:
		return err
	}
}
