package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

// maxReviewsPerMovie caps a single ListByMovie read.
const maxReviewsPerMovie = 200

type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(reviewsCollection)}
}

type mongoReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	MovieID   int                `bson:"movie_id"`
	Username  string             `bson:"username"`
	Author    string             `bson:"author"`
	Content   string             `bson:"review"`
	Rating    int                `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoReview{
		MovieID:   review.MovieID,
		Username:  review.Username,
		Author:    review.Author,
		Content:   review.Content,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	out := doc.toDomain()
	return &out, nil
}

// ListByMovie returns reviews for movieID, newest first.
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID int) ([]domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(maxReviewsPerMovie)

	cursor, err := r.coll.Find(ctx, bson.M{"movie_id": movieID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoReview
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	reviews := make([]domain.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, d.toDomain())
	}
	return reviews, nil
}

func (d mongoReview) toDomain() domain.Review {
	return domain.Review{
		ID:        d.ID.Hex(),
		MovieID:   d.MovieID,
		Username:  d.Username,
		Author:    d.Author,
		Content:   d.Content,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
	}
}
