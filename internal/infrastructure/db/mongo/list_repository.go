package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

// ListRepository stores favorites and watchlists, one collection per kind and
// one document per user. Mutations are single atomic update operators.
type ListRepository struct {
	colls map[domain.ListKind]*mongo.Collection
}

func NewListRepository(db *mongo.Database) *ListRepository {
	return &ListRepository{colls: map[domain.ListKind]*mongo.Collection{
		domain.ListFavorites: db.Collection(favoritesCollection),
		domain.ListWatchlist: db.Collection(watchlistsCollection),
	}}
}

type mongoList struct {
	Username string `bson:"username"`
	Movies   []int  `bson:"movies"`
}

func (r *ListRepository) coll(kind domain.ListKind) (*mongo.Collection, error) {
	c, ok := r.colls[kind]
	if !ok {
		return nil, fmt.Errorf("list %q: %w", kind, domain.ErrListNotFound)
	}
	return c, nil
}

func (r *ListRepository) Get(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error) {
	coll, err := r.coll(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoList
	if err := coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListNotFound
		}
		return nil, fmt.Errorf("find %s: %w", kind, err)
	}
	return doc.toDomain(kind), nil
}

// Ensure creates an empty list for username if none exists.
func (r *ListRepository) Ensure(ctx context.Context, kind domain.ListKind, username string) error {
	coll, err := r.coll(kind)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$setOnInsert": bson.M{"movies": bson.A{}}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("ensure %s: %w", kind, err)
	}
	return nil
}

// Add inserts ids with $addToSet, creating the document when missing.
func (r *ListRepository) Add(ctx context.Context, kind domain.ListKind, username string, ids []int) (*domain.MovieList, error) {
	update := bson.M{"$addToSet": bson.M{"movies": bson.M{"$each": ids}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	list, err := r.findOneAndUpdate(ctx, kind, username, update, opts)
	// Two concurrent upserts can race on the unique index; the loser retries
	// against the document the winner created.
	if err != nil && mongo.IsDuplicateKeyError(err) {
		list, err = r.findOneAndUpdate(ctx, kind, username, update, opts)
	}
	return list, err
}

// Remove pulls ids from the list. Absent ids are ignored; an absent list is
// ErrListNotFound.
func (r *ListRepository) Remove(ctx context.Context, kind domain.ListKind, username string, ids []int) (*domain.MovieList, error) {
	update := bson.M{"$pull": bson.M{"movies": bson.M{"$in": ids}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return r.findOneAndUpdate(ctx, kind, username, update, opts)
}

func (r *ListRepository) findOneAndUpdate(ctx context.Context, kind domain.ListKind, username string, update bson.M, opts *options.FindOneAndUpdateOptions) (*domain.MovieList, error) {
	coll, err := r.coll(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoList
	err = coll.FindOneAndUpdate(ctx, bson.M{"username": username}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update %s: %w", kind, err)
	}
	return doc.toDomain(kind), nil
}

func (d mongoList) toDomain(kind domain.ListKind) *domain.MovieList {
	movies := d.Movies
	if movies == nil {
		movies = []int{}
	}
	return &domain.MovieList{Kind: kind, Username: d.Username, Movies: movies}
}
