package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

type stubCatalog struct {
	calls   atomic.Int32
	fetchFn func(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error)
}

func (s *stubCatalog) Fetch(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
	s.calls.Add(1)
	return s.fetchFn(ctx, req)
}

type mapCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func TestCatalogService_ForwardsBodyVerbatim(t *testing.T) {
	upstream := &stubCatalog{fetchFn: func(_ context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
		if req.Resource != domain.ResourceMovieDetails || req.ID != 550 {
			t.Fatalf("unexpected request: %+v", req)
		}
		return json.RawMessage(`{"id":550,"title":"Fight Club"}`), nil
	}}
	svc := NewCatalogService(upstream, nil, 0, zerolog.Nop())

	body, err := svc.Fetch(context.Background(), domain.CatalogRequest{Resource: domain.ResourceMovieDetails, ID: 550})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(body) != `{"id":550,"title":"Fight Club"}` {
		t.Fatalf("body altered: %s", body)
	}
}

func TestCatalogService_InvalidRequestNeverGoesUpstream(t *testing.T) {
	upstream := &stubCatalog{fetchFn: func(context.Context, domain.CatalogRequest) (json.RawMessage, error) {
		t.Fatalf("upstream should not be called")
		return nil, nil
	}}
	svc := NewCatalogService(upstream, nil, 0, zerolog.Nop())

	_, err := svc.Fetch(context.Background(), domain.CatalogRequest{Resource: domain.ResourceDiscover, Page: 0})
	if !errors.Is(err, domain.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
}

func TestCatalogService_UpstreamError(t *testing.T) {
	upstream := &stubCatalog{fetchFn: func(context.Context, domain.CatalogRequest) (json.RawMessage, error) {
		return nil, domain.ErrUpstream
	}}
	svc := NewCatalogService(upstream, newMapCache(), time.Minute, zerolog.Nop())

	_, err := svc.Fetch(context.Background(), domain.CatalogRequest{Resource: domain.ResourceGenres})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestCatalogService_CachesWhenEnabled(t *testing.T) {
	upstream := &stubCatalog{fetchFn: func(context.Context, domain.CatalogRequest) (json.RawMessage, error) {
		return json.RawMessage(`{"genres":[]}`), nil
	}}
	svc := NewCatalogService(upstream, newMapCache(), time.Minute, zerolog.Nop())
	req := domain.CatalogRequest{Resource: domain.ResourceGenres}

	for i := 0; i < 3; i++ {
		if _, err := svc.Fetch(context.Background(), req); err != nil {
			t.Fatalf("Fetch returned error: %v", err)
		}
	}
	if got := upstream.calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestCatalogService_ZeroTTLDisablesCache(t *testing.T) {
	upstream := &stubCatalog{fetchFn: func(context.Context, domain.CatalogRequest) (json.RawMessage, error) {
		return json.RawMessage(`{}`), nil
	}}
	cache := newMapCache()
	svc := NewCatalogService(upstream, cache, 0, zerolog.Nop())
	req := domain.CatalogRequest{Resource: domain.ResourceTrending}

	_, _ = svc.Fetch(context.Background(), req)
	_, _ = svc.Fetch(context.Background(), req)

	if got := upstream.calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
	if len(cache.data) != 0 {
		t.Fatalf("cache should be untouched")
	}
}

func TestCatalogService_CacheReadErrorFallsThrough(t *testing.T) {
	upstream := &stubCatalog{fetchFn: func(context.Context, domain.CatalogRequest) (json.RawMessage, error) {
		return json.RawMessage(`{"ok":true}`), nil
	}}
	cache := newMapCache()
	cache.getErr = errors.New("redis timeout")
	svc := NewCatalogService(upstream, cache, time.Minute, zerolog.Nop())

	body, err := svc.Fetch(context.Background(), domain.CatalogRequest{Resource: domain.ResourceUpcoming, Page: 1})
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestCatalogService_CanceledCallerDoesNotFailSharedFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	upstream := &stubCatalog{fetchFn: func(ctx context.Context, _ domain.CatalogRequest) (json.RawMessage, error) {
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return json.RawMessage(`{"genres":[]}`), nil
	}}
	svc := NewCatalogService(upstream, newMapCache(), time.Minute, zerolog.Nop())
	req := domain.CatalogRequest{Resource: domain.ResourceGenres}

	ctx1, cancel1 := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := svc.Fetch(ctx1, req)
		first <- err
	}()
	<-started

	type result struct {
		body json.RawMessage
		err  error
	}
	second := make(chan result, 1)
	go func() {
		body, err := svc.Fetch(context.Background(), req)
		second <- result{body, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel1()
	select {
	case err := <-first:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected canceled caller to get context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("canceled caller kept waiting on the shared fetch")
	}

	close(release)
	res := <-second
	if res.err != nil {
		t.Fatalf("live caller failed: %v", res.err)
	}
	if string(res.body) != `{"genres":[]}` {
		t.Fatalf("unexpected body: %s", res.body)
	}
	if n := upstream.calls.Load(); n != 1 {
		t.Fatalf("expected one upstream call, got %d", n)
	}
}
