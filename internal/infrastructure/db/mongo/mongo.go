package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names.
const (
	usersCollection      = "users"
	favoritesCollection  = "favorites"
	watchlistsCollection = "watchlists"
	reviewsCollection    = "reviews"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique username indexes that back the
// one-document-per-user invariant, plus the review lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{usersCollection, favoritesCollection, watchlistsCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("index %s.username: %w", name, err)
		}
	}

	byMovie := mongo.IndexModel{Keys: bson.D{{Key: "movie_id", Value: 1}, {Key: "created_at", Value: -1}}}
	if _, err := db.Collection(reviewsCollection).Indexes().CreateOne(ctx, byMovie); err != nil {
		return fmt.Errorf("index reviews.movie_id: %w", err)
	}
	return nil
}

// DropUserData removes every user and list document. Only the development
// seed command calls it.
func DropUserData(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{usersCollection, favoritesCollection, watchlistsCollection} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}
