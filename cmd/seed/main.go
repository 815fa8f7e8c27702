// Command seed resets the user collections and creates two demo accounts.
// It refuses to run outside the development environment.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/moviesapp/movies-api/internal/core/service"
	mongorepo "github.com/moviesapp/movies-api/internal/infrastructure/db/mongo"
	"github.com/moviesapp/movies-api/internal/pkg/config"
	"github.com/moviesapp/movies-api/pkg/logger"
)

var demoUsers = []struct{ username, password string }{
	{"user1", "test123@"},
	{"user2", "test456@"},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "movies-seed"})

	if cfg.Env != "development" {
		log.Error().Str("env", cfg.Env).Msg("seeding is only allowed in development")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer client.Disconnect(context.Background())

	if err := mongorepo.DropUserData(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("drop user data")
	}
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}

	auth := service.NewAuthService(
		mongorepo.NewUserRepository(db),
		mongorepo.NewListRepository(db),
		cfg.JWTSecret, cfg.JWTTTL, log,
	)
	for _, u := range demoUsers {
		if _, err := auth.Register(ctx, u.username, u.password); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("seed user")
		}
		log.Info().Str("username", u.username).Msg("user seeded")
	}
	log.Info().Int("users", len(demoUsers)).Msg("seeding complete")
}
