package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinReviewLength = 10
	DefaultRating   = 3
)

// Ratings maps each allowed rating to its label. There is no 1.
var Ratings = map[int]string{
	5: "Excellent",
	4: "Good",
	3: "Average",
	2: "Poor",
	0: "Terrible",
}

// Review is a user-written review of a TMDB movie.
type Review struct {
	ID        string    `json:"id"`
	MovieID   int       `json:"movie_id"`
	Username  string    `json:"username"`
	Author    string    `json:"author"`
	Content   string    `json:"review"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Review) Validate() error {
	if r.MovieID <= 0 {
		return fmt.Errorf("%w: movie id must be positive", ErrInvalidReview)
	}
	if strings.TrimSpace(r.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidReview)
	}
	if len([]rune(strings.TrimSpace(r.Content))) < MinReviewLength {
		return fmt.Errorf("%w: review is too short", ErrInvalidReview)
	}
	if _, ok := Ratings[r.Rating]; !ok {
		return fmt.Errorf("%w: rating must be one of 0, 2, 3, 4, 5", ErrInvalidReview)
	}
	return nil
}
