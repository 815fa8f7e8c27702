package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxParallelDetails bounds MoviesByID fan-out.
const maxParallelDetails = 8

func pagePath(path string, page int) string {
	if page <= 0 {
		return path
	}
	return path + "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
}

// Movies returns a page of discovered movies. page <= 0 means the first page.
func (c *Client) Movies(ctx context.Context, page int) (*MoviePage, error) {
	var out MoviePage
	if err := c.query(ctx, pagePath("/api/movies", page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Upcoming(ctx context.Context, page int) (*MoviePage, error) {
	var out MoviePage
	if err := c.query(ctx, pagePath("/api/movies/upcoming", page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	var out MoviePage
	if err := c.query(ctx, pagePath("/api/movies/top_rated", page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Trending returns this week's trending movies.
func (c *Client) Trending(ctx context.Context) (*MoviePage, error) {
	var out MoviePage
	if err := c.query(ctx, "/api/movies/trending", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var out struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.query(ctx, "/api/movies/genres", &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func (c *Client) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	var out MovieDetails
	if err := c.query(ctx, fmt.Sprintf("/api/movies/%d/details", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Credits(ctx context.Context, id int) (*Credits, error) {
	var out Credits
	if err := c.query(ctx, fmt.Sprintf("/api/movies/%d/credits", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Images(ctx context.Context, id int) (*Images, error) {
	var out Images
	if err := c.query(ctx, fmt.Sprintf("/api/movies/%d/images", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieReviews returns TMDB's reviews for a movie. See UserReviews for reviews
// written through this API.
func (c *Client) MovieReviews(ctx context.Context, id int) (*ReviewPage, error) {
	var out ReviewPage
	if err := c.query(ctx, fmt.Sprintf("/api/movies/%d/reviews", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PersonMovies(ctx context.Context, id int) (*PersonCredits, error) {
	var out PersonCredits
	if err := c.query(ctx, fmt.Sprintf("/api/movies/person/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Person(ctx context.Context, id int) (*Person, error) {
	var out Person
	if err := c.query(ctx, fmt.Sprintf("/api/movies/person/%d/details", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func userReviewsPath(movieID int) string {
	return fmt.Sprintf("/api/reviews/%d", movieID)
}

// UserReviews returns reviews written through this API, newest first.
func (c *Client) UserReviews(ctx context.Context, movieID int) ([]Review, error) {
	var out []Review
	if err := c.query(ctx, userReviewsPath(movieID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MoviesByID fetches details for every id in parallel. The result has the
// same order as ids.
func (c *Client) MoviesByID(ctx context.Context, ids []int) ([]MovieDetails, error) {
	out := make([]MovieDetails, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDetails)
	for i, id := range ids {
		g.Go(func() error {
			m, err := c.MovieDetails(gctx, id)
			if err != nil {
				return fmt.Errorf("movie %d: %w", id, err)
			}
			out[i] = *m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterMovies keeps movies whose title contains title (case-insensitive)
// and, when genreID is non-zero, that carry that genre. Zero means all genres.
func FilterMovies(movies []Movie, title string, genreID int) []Movie {
	needle := strings.ToLower(title)
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		if genreID != 0 && !hasGenre(m, genreID) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func hasGenre(m Movie, genreID int) bool {
	for _, g := range m.GenreIDs {
		if g == genreID {
			return true
		}
	}
	return false
}
