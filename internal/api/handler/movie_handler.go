package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
)

// catalogRoute binds a path under /api/movies to one upstream resource.
type catalogRoute struct {
	path     string
	resource domain.Resource
}

// catalogRoutes is the whole movie proxy surface. Static segments are listed
// before parameterized ones for readability only; echo prefers static
// matches regardless of order.
var catalogRoutes = []catalogRoute{
	{"", domain.ResourceDiscover},
	{"/upcoming", domain.ResourceUpcoming},
	{"/trending", domain.ResourceTrending},
	{"/top_rated", domain.ResourceTopRated},
	{"/genres", domain.ResourceGenres},
	{"/person/:id", domain.ResourcePersonMovies},
	{"/person/:id/details", domain.ResourcePersonDetails},
	{"/:id/details", domain.ResourceMovieDetails},
	{"/:id/credits", domain.ResourceMovieCredits},
	{"/:id/images", domain.ResourceMovieImages},
	{"/:id/reviews", domain.ResourceMovieReviews},
}

type MovieHandler struct {
	catalog ports.CatalogService
	log     zerolog.Logger
}

func NewMovieHandler(catalog ports.CatalogService, log zerolog.Logger) *MovieHandler {
	return &MovieHandler{catalog: catalog, log: log}
}

// Register mounts every catalog route on g.
//
// @Summary      Proxy a TMDB catalog request
// @Description  Forwards to TMDB and returns its JSON body unchanged. Paged
// @Description  resources (/, /upcoming, /top_rated) take ?page=N, default 1.
// @Tags         movies
// @Produce      json
// @Param        resource  path      string  true   "discover, upcoming, trending, top_rated or genres"
// @Param        page      query     int     false  "Page 1..500"
// @Success      200       "Upstream JSON, unchanged"
// @Failure      400       {object}  proxyErrorResponse
// @Failure      500       {object}  proxyErrorResponse
// @Router       /api/movies/{resource} [get]
func (h *MovieHandler) Register(g *echo.Group) {
	for _, r := range catalogRoutes {
		g.GET(r.path, h.serve(r.resource))
	}
}

func (h *MovieHandler) serve(resource domain.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := catalogRequest(c, resource)
		if err != nil {
			return c.JSON(http.StatusBadRequest, proxyErrorResponse{Error: err.Error()})
		}

		body, err := h.catalog.Fetch(c.Request().Context(), req)
		switch {
		case err == nil:
			return c.JSONBlob(http.StatusOK, body)
		case errors.Is(err, domain.ErrInvalidPage), errors.Is(err, domain.ErrInvalidID):
			return c.JSON(http.StatusBadRequest, proxyErrorResponse{Error: err.Error()})
		default:
			h.log.Error().
				Err(err).
				Str("resource", string(resource)).
				Str("path", c.Request().URL.Path).
				Msg("catalog fetch failed")
			return c.JSON(http.StatusInternalServerError, proxyErrorResponse{Error: "Failed to fetch " + req.Description()})
		}
	}
}

// catalogRequest reads the id path parameter or page query parameter the
// resource takes. A missing page means 1; a present but malformed one is an
// error and is never forwarded upstream.
func catalogRequest(c echo.Context, resource domain.Resource) (domain.CatalogRequest, error) {
	req := domain.CatalogRequest{Resource: resource}

	switch resource.Param() {
	case domain.ParamID:
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			return req, domain.ErrInvalidID
		}
		req.ID = id
	case domain.ParamPage:
		req.Page = 1
		if raw := c.QueryParam("page"); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil || page < 1 || page > domain.MaxPage {
				return req, domain.ErrInvalidPage
			}
			req.Page = page
		}
	}
	return req, nil
}
