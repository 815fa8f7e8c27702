package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
)

type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	Author string `json:"author" validate:"required"`
	Review string `json:"review" validate:"required,min=10"`
	// Rating defaults to Average when omitted.
	Rating *int `json:"rating" validate:"omitempty,oneof=0 2 3 4 5"`
}

// Create stores a review for the movie in the path.
//
// @Summary      Write a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "TMDB movie id"
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400,401  {object}  statusResponse
// @Router       /api/reviews/{id} [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil || movieID <= 0 {
		return fail(c, http.StatusBadRequest, domain.ErrInvalidID.Error())
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	rating := domain.DefaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}

	created, err := h.service.Create(c.Request().Context(), username, domain.Review{
		MovieID: movieID,
		Author:  req.Author,
		Content: req.Review,
		Rating:  rating,
	})
	if errors.Is(err, domain.ErrInvalidReview) {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns the stored reviews for a movie, newest first.
//
// @Summary      List reviews written by users
// @Tags         reviews
// @Produce      json
// @Param        id   path      int  true  "TMDB movie id"
// @Success      200  {array}   domain.Review
// @Failure      400  {object}  statusResponse
// @Router       /api/reviews/{id} [get]
func (h *ReviewHandler) List(c echo.Context) error {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil || movieID <= 0 {
		return fail(c, http.StatusBadRequest, domain.ErrInvalidID.Error())
	}

	reviews, err := h.service.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
