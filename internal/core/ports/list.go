package ports

import (
	"context"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

// ListRepository stores per-user movie lists. Add and Remove must be atomic
// on the stored set so concurrent writers never lose each other's ids.
type ListRepository interface {
	Get(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error)
	Ensure(ctx context.Context, kind domain.ListKind, username string) error
	Add(ctx context.Context, kind domain.ListKind, username string, ids []int) (*domain.MovieList, error)
	Remove(ctx context.Context, kind domain.ListKind, username string, ids []int) (*domain.MovieList, error)
}

// ListService exposes list reads and owner-only mutations.
type ListService interface {
	Get(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error)
	Add(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error)
	Remove(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error)
}
