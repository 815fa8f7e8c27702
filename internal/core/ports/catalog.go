package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

// MovieCatalog is the upstream movie database. Fetch returns the upstream
// JSON body untouched.
type MovieCatalog interface {
	Fetch(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error)
}

// ResponseCache stores upstream bodies by key. A miss is (nil, false, nil).
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CatalogService serves catalog reads to the HTTP layer.
type CatalogService interface {
	Fetch(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error)
}
