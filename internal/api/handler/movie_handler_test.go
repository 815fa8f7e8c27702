package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

type stubCatalogService struct {
	fetchFn func(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error)
}

func (s *stubCatalogService) Fetch(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
	return s.fetchFn(ctx, req)
}

func serveMovies(t *testing.T, stub *stubCatalogService, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := newEcho()
	NewMovieHandler(stub, zerolog.Nop()).Register(e.Group("/api/movies"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestMovieHandler_RoutesToResources(t *testing.T) {
	cases := []struct {
		target string
		want   domain.CatalogRequest
	}{
		{"/api/movies", domain.CatalogRequest{Resource: domain.ResourceDiscover, Page: 1}},
		{"/api/movies?page=4", domain.CatalogRequest{Resource: domain.ResourceDiscover, Page: 4}},
		{"/api/movies/upcoming", domain.CatalogRequest{Resource: domain.ResourceUpcoming, Page: 1}},
		{"/api/movies/trending", domain.CatalogRequest{Resource: domain.ResourceTrending}},
		{"/api/movies/top_rated?page=2", domain.CatalogRequest{Resource: domain.ResourceTopRated, Page: 2}},
		{"/api/movies/genres", domain.CatalogRequest{Resource: domain.ResourceGenres}},
		{"/api/movies/550/details", domain.CatalogRequest{Resource: domain.ResourceMovieDetails, ID: 550}},
		{"/api/movies/550/credits", domain.CatalogRequest{Resource: domain.ResourceMovieCredits, ID: 550}},
		{"/api/movies/550/images", domain.CatalogRequest{Resource: domain.ResourceMovieImages, ID: 550}},
		{"/api/movies/550/reviews", domain.CatalogRequest{Resource: domain.ResourceMovieReviews, ID: 550}},
		{"/api/movies/person/287", domain.CatalogRequest{Resource: domain.ResourcePersonMovies, ID: 287}},
		{"/api/movies/person/287/details", domain.CatalogRequest{Resource: domain.ResourcePersonDetails, ID: 287}},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			var got domain.CatalogRequest
			stub := &stubCatalogService{fetchFn: func(_ context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
				got = req
				return json.RawMessage(`{"ok":true}`), nil
			}}

			rec := serveMovies(t, stub, tc.target)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if rec.Body.String() != `{"ok":true}` {
				t.Fatalf("body not forwarded verbatim: %s", rec.Body.String())
			}
			if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
				t.Fatalf("unexpected content type %q", ct)
			}
		})
	}
}

func TestMovieHandler_UpstreamFailure(t *testing.T) {
	stub := &stubCatalogService{fetchFn: func(_ context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
		return nil, fmt.Errorf("fetch details: %w", domain.ErrUpstream)
	}}

	rec := serveMovies(t, stub, "/api/movies/550/details")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"error":"Failed to fetch details"}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestMovieHandler_PersonFailureMessage(t *testing.T) {
	stub := &stubCatalogService{fetchFn: func(_ context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
		return nil, domain.ErrUpstream
	}}

	rec := serveMovies(t, stub, "/api/movies/person/287/details")

	if !strings.Contains(rec.Body.String(), "Failed to fetch details for person 287") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestMovieHandler_InvalidParams(t *testing.T) {
	stub := &stubCatalogService{fetchFn: func(_ context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
		t.Fatalf("invalid request reached the catalog: %+v", req)
		return nil, nil
	}}

	for _, target := range []string{
		"/api/movies?page=abc",
		"/api/movies?page=0",
		"/api/movies?page=501",
		"/api/movies/top_rated?page=-1",
		"/api/movies/abc/details",
		"/api/movies/person/xyz",
	} {
		rec := serveMovies(t, stub, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestCatalogRoutesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	resources := map[domain.Resource]bool{}
	for _, r := range catalogRoutes {
		if seen[r.path] {
			t.Fatalf("duplicate path %q", r.path)
		}
		seen[r.path] = true
		resources[r.resource] = true
	}
	if len(resources) != len(catalogRoutes) {
		t.Fatalf("a resource is bound to more than one route")
	}
}
