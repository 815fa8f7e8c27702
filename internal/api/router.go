package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/moviesapp/movies-api/docs"
	"github.com/moviesapp/movies-api/internal/api/handler"
	"github.com/moviesapp/movies-api/internal/api/middleware"
	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
	"github.com/moviesapp/movies-api/internal/core/service"
	"github.com/moviesapp/movies-api/internal/infrastructure/cache"
	mongorepo "github.com/moviesapp/movies-api/internal/infrastructure/db/mongo"
	redisstore "github.com/moviesapp/movies-api/internal/infrastructure/db/redis"
	"github.com/moviesapp/movies-api/internal/infrastructure/tmdb"
	"github.com/moviesapp/movies-api/internal/pkg/config"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth    ports.AuthService
	Lists   ports.ListService
	Catalog ports.CatalogService
	Reviews ports.ReviewService
	// Health maps dependency names to readiness checks.
	Health map[string]handler.Pinger
}

// NewServices wires repositories, caches and the upstream client into
// services. rdb may be nil when Redis is not configured.
func NewServices(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) (*Services, error) {
	users := mongorepo.NewUserRepository(db)
	lists := mongorepo.NewListRepository(db)
	reviews := mongorepo.NewReviewRepository(db)

	health := map[string]handler.Pinger{
		"mongodb": handler.PingFunc(func(ctx context.Context) error { return db.Client().Ping(ctx, nil) }),
	}

	var responseCache ports.ResponseCache
	if cfg.Cache.TTL > 0 {
		if rdb != nil {
			responseCache = redisstore.NewResponseCache(rdb)
		} else {
			lru, err := cache.NewLRU(cfg.Cache.Size)
			if err != nil {
				return nil, fmt.Errorf("catalog cache: %w", err)
			}
			responseCache = lru
		}
	}
	if rdb != nil {
		health["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	upstream := tmdb.NewClient(tmdb.Config{
		BaseURL: cfg.TMDB.BaseURL,
		APIKey:  cfg.TMDB.APIKey,
		Timeout: cfg.TMDB.Timeout,
	})

	return &Services{
		Auth:    service.NewAuthService(users, lists, cfg.JWTSecret, cfg.JWTTTL, log),
		Lists:   service.NewListService(lists, log),
		Catalog: service.NewCatalogService(upstream, responseCache, cfg.Cache.TTL, log),
		Reviews: service.NewReviewService(reviews, log),
		Health:  health,
	}, nil
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, svc *Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORS())

	requireAuth := middleware.Auth(cfg.JWTSecret)

	// --- Users (login / register) ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	e.POST("/api/users", authHandler.Users, middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	// --- Movie catalog proxy (public) ---
	handler.NewMovieHandler(svc.Catalog, log).Register(e.Group("/api/movies"))

	// --- Favorites / watchlist (bearer token) ---
	for _, kind := range domain.ListKinds {
		h := handler.NewListHandler(kind, svc.Lists)
		g := e.Group("/api/"+string(kind), requireAuth)
		g.GET("/:username", h.Get)
		g.PUT("/:username", h.Add, middleware.RequireOwner("username"))
		g.DELETE("/:username", h.Remove, middleware.RequireOwner("username"))
	}

	// --- Reviews ---
	reviewHandler := handler.NewReviewHandler(svc.Reviews)
	e.GET("/api/reviews/:id", reviewHandler.List)
	e.POST("/api/reviews/:id", reviewHandler.Create, requireAuth)

	// --- Ops ---
	healthHandler := handler.NewHealthHandler(svc.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
