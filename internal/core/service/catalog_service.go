package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
	"github.com/moviesapp/movies-api/internal/pkg/metrics"
)

// CatalogService validates catalog reads and forwards them upstream,
// optionally through a response cache.
type CatalogService struct {
	upstream ports.MovieCatalog
	cache    ports.ResponseCache
	ttl      time.Duration
	group    singleflight.Group
	log      zerolog.Logger
}

// NewCatalogService returns a CatalogService. A nil cache or a ttl <= 0
// disables caching and every call goes upstream.
func NewCatalogService(upstream ports.MovieCatalog, cache ports.ResponseCache, ttl time.Duration, log zerolog.Logger) *CatalogService {
	if ttl <= 0 {
		cache = nil
	}
	return &CatalogService{upstream: upstream, cache: cache, ttl: ttl, log: log}
}

func (s *CatalogService) Fetch(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return s.fetchUpstream(ctx, req)
	}

	key := req.CacheKey()
	if body, ok := s.lookup(ctx, key); ok {
		return body, nil
	}

	// The shared fetch outlives any single caller; each caller stops waiting
	// when its own context ends. The upstream client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		body, err := s.fetchUpstream(shared, req)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(shared, key, body, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	}
}

func (s *CatalogService) lookup(ctx context.Context, key string) (json.RawMessage, bool) {
	body, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		return nil, false
	case !ok:
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	default:
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return json.RawMessage(body), true
	}
}

func (s *CatalogService) fetchUpstream(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
	body, err := s.upstream.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.Description(), err)
	}
	return body, nil
}
