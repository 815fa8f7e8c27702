package tmdb

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

const language = "en-US"

type endpoint struct {
	// path is a format string taking the request id when the resource has one.
	path     string
	language bool
	discover bool
}

var endpoints = map[domain.Resource]endpoint{
	domain.ResourceDiscover:      {path: "/discover/movie", language: true, discover: true},
	domain.ResourceMovieDetails:  {path: "/movie/%d"},
	domain.ResourceMovieCredits:  {path: "/movie/%d/credits", language: true},
	domain.ResourceMovieImages:   {path: "/movie/%d/images"},
	domain.ResourceMovieReviews:  {path: "/movie/%d/reviews"},
	domain.ResourceUpcoming:      {path: "/movie/upcoming", language: true},
	domain.ResourceTrending:      {path: "/trending/movie/week", language: true},
	domain.ResourceTopRated:      {path: "/movie/top_rated", language: true},
	domain.ResourceGenres:        {path: "/genre/movie/list", language: true},
	domain.ResourcePersonMovies:  {path: "/person/%d/movie_credits", language: true},
	domain.ResourcePersonDetails: {path: "/person/%d", language: true},
}

// buildPath returns the upstream path and query (without api_key) for req.
func buildPath(req domain.CatalogRequest) (string, url.Values, error) {
	ep, ok := endpoints[req.Resource]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnknownResource, req.Resource)
	}

	path := ep.path
	q := url.Values{}
	switch req.Resource.Param() {
	case domain.ParamID:
		path = fmt.Sprintf(ep.path, req.ID)
	case domain.ParamPage:
		q.Set("page", strconv.Itoa(req.Page))
	}
	if ep.language {
		q.Set("language", language)
	}
	if ep.discover {
		q.Set("include_adult", "false")
		q.Set("include_video", "false")
	}
	return path, q, nil
}
