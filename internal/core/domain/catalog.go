package domain

import "fmt"

// Resource identifies one upstream catalog endpoint.
type Resource string

const (
	ResourceDiscover      Resource = "discover"
	ResourceMovieDetails  Resource = "movie_details"
	ResourceMovieCredits  Resource = "movie_credits"
	ResourceMovieImages   Resource = "movie_images"
	ResourceMovieReviews  Resource = "movie_reviews"
	ResourceUpcoming      Resource = "upcoming"
	ResourceTrending      Resource = "trending"
	ResourceTopRated      Resource = "top_rated"
	ResourceGenres        Resource = "genres"
	ResourcePersonMovies  Resource = "person_movies"
	ResourcePersonDetails Resource = "person_details"
)

// ParamKind is the single request parameter a resource takes, if any.
type ParamKind int

const (
	ParamNone ParamKind = iota
	ParamID
	ParamPage
)

// MaxPage is the highest page TMDB will serve for paged listings.
const MaxPage = 500

var resourceParams = map[Resource]ParamKind{
	ResourceDiscover:      ParamPage,
	ResourceMovieDetails:  ParamID,
	ResourceMovieCredits:  ParamID,
	ResourceMovieImages:   ParamID,
	ResourceMovieReviews:  ParamID,
	ResourceUpcoming:      ParamPage,
	ResourceTrending:      ParamNone,
	ResourceTopRated:      ParamPage,
	ResourceGenres:        ParamNone,
	ResourcePersonMovies:  ParamID,
	ResourcePersonDetails: ParamID,
}

// Param returns the parameter kind for r. Unknown resources report ParamNone.
func (r Resource) Param() ParamKind {
	return resourceParams[r]
}

func (r Resource) Known() bool {
	_, ok := resourceParams[r]
	return ok
}

// CatalogRequest is one read against the upstream catalog.
type CatalogRequest struct {
	Resource Resource
	ID       int
	Page     int
}

// Validate checks that the request carries the parameter its resource needs.
func (r CatalogRequest) Validate() error {
	switch r.Resource.Param() {
	case ParamID:
		if r.ID <= 0 {
			return ErrInvalidID
		}
	case ParamPage:
		if r.Page < 1 || r.Page > MaxPage {
			return ErrInvalidPage
		}
	}
	if !r.Resource.Known() {
		return ErrUnknownResource
	}
	return nil
}

// CacheKey identifies the upstream response for this request.
func (r CatalogRequest) CacheKey() string {
	switch r.Resource.Param() {
	case ParamID:
		return fmt.Sprintf("catalog:%s:%d", r.Resource, r.ID)
	case ParamPage:
		return fmt.Sprintf("catalog:%s:p%d", r.Resource, r.Page)
	default:
		return "catalog:" + string(r.Resource)
	}
}

// Description names what the request fetches, as used in the
// "Failed to fetch <description>" error body.
func (r CatalogRequest) Description() string {
	switch r.Resource {
	case ResourceDiscover:
		return "movies"
	case ResourceMovieDetails:
		return "details"
	case ResourceMovieCredits:
		return "credits"
	case ResourceMovieImages:
		return "images"
	case ResourceMovieReviews:
		return "reviews"
	case ResourceUpcoming:
		return "upcoming movies"
	case ResourceTrending:
		return "trending movies"
	case ResourceTopRated:
		return "top rated movies"
	case ResourceGenres:
		return "genres"
	case ResourcePersonMovies:
		return fmt.Sprintf("movies for person %d", r.ID)
	case ResourcePersonDetails:
		return fmt.Sprintf("details for person %d", r.ID)
	default:
		return string(r.Resource)
	}
}
