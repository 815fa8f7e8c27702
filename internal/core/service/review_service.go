package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
)

type reviewService struct {
	repo ports.ReviewRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewReviewService(repo ports.ReviewRepository, log zerolog.Logger) ports.ReviewService {
	return &reviewService{repo: repo, log: log, now: time.Now}
}

// Create stores a review written by username. The account name is taken from
// the caller, never from the request body.
func (s *reviewService) Create(ctx context.Context, username string, review domain.Review) (*domain.Review, error) {
	if username == "" {
		return nil, domain.ErrForbidden
	}

	review.ID = ""
	review.Username = username
	review.Author = strings.TrimSpace(review.Author)
	review.Content = strings.TrimSpace(review.Content)
	review.CreatedAt = s.now().UTC()
	if err := review.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info().Str("username", username).Int("movie_id", review.MovieID).Msg("review created")
	return created, nil
}

func (s *reviewService) ListByMovie(ctx context.Context, movieID int) ([]domain.Review, error) {
	if movieID <= 0 {
		return nil, domain.ErrInvalidID
	}
	reviews, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}
