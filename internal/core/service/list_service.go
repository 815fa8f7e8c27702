package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
	"github.com/moviesapp/movies-api/internal/pkg/metrics"
)

type listService struct {
	repo ports.ListRepository
	log  zerolog.Logger
}

// NewListService returns a ListService over repo. Mutations are only allowed
// on the caller's own lists.
func NewListService(repo ports.ListRepository, log zerolog.Logger) ports.ListService {
	return &listService{repo: repo, log: log}
}

func (s *listService) Get(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("get list %q: %w", kind, domain.ErrListNotFound)
	}
	return s.repo.Get(ctx, kind, username)
}

func (s *listService) Add(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
	if err := s.authorize(kind, actor, username, ids); err != nil {
		return nil, err
	}

	list, err := s.repo.Add(ctx, kind, username, domain.DedupIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("add to %s: %w", kind, err)
	}

	metrics.ListMutationsTotal.WithLabelValues(string(kind), "add").Inc()
	s.log.Debug().Str("username", username).Str("list", string(kind)).Ints("ids", ids).Msg("movies added")
	return list, nil
}

func (s *listService) Remove(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
	if err := s.authorize(kind, actor, username, ids); err != nil {
		return nil, err
	}

	list, err := s.repo.Remove(ctx, kind, username, domain.DedupIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("remove from %s: %w", kind, err)
	}

	metrics.ListMutationsTotal.WithLabelValues(string(kind), "remove").Inc()
	s.log.Debug().Str("username", username).Str("list", string(kind)).Ints("ids", ids).Msg("movies removed")
	return list, nil
}

func (s *listService) authorize(kind domain.ListKind, actor, username string, ids []int) error {
	if !kind.Valid() {
		return fmt.Errorf("list %q: %w", kind, domain.ErrListNotFound)
	}
	if actor == "" || actor != username {
		return domain.ErrForbidden
	}
	if len(ids) == 0 {
		return domain.ErrInvalidIDs
	}
	return nil
}
