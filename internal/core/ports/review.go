package ports

import (
	"context"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListByMovie(ctx context.Context, movieID int) ([]domain.Review, error)
}

type ReviewService interface {
	Create(ctx context.Context, username string, review domain.Review) (*domain.Review, error)
	ListByMovie(ctx context.Context, movieID int) ([]domain.Review, error)
}
