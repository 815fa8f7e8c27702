package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

// DevJWTSecret signs tokens outside production when JWT_SECRET is unset.
const DevJWTSecret = "movies-api-dev-secret"

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`

	Mongo     MongoConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=movies_db"`
}

// RedisConfig is optional. An empty address disables Redis entirely.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type TMDBConfig struct {
	APIKey  string        `env:"TMDB_KEY"`
	BaseURL string        `env:"TMDB_BASE_URL, default=https://api.themoviedb.org/3"`
	Timeout time.Duration `env:"TMDB_TIMEOUT,  default=10s"`
}

// CacheConfig controls the upstream response cache. TTL 0 disables it.
type CacheConfig struct {
	TTL  time.Duration `env:"UPSTREAM_CACHE_TTL,  default=0s"`
	Size int           `env:"UPSTREAM_CACHE_SIZE, default=1000"`
}

type RateLimitConfig struct {
	RPS   float64 `env:"AUTH_RATE_LIMIT_RPS,   default=5"`
	Burst int     `env:"AUTH_RATE_LIMIT_BURST, default=10"`
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate reports settings that would make the server unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.IsProduction() && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.Cache.TTL > 0 && c.Cache.Size <= 0 {
		errs = append(errs, errors.New("UPSTREAM_CACHE_SIZE must be positive when the cache is enabled"))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT_RPS and AUTH_RATE_LIMIT_BURST must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevJWTSecret
	}
	return &cfg, nil
}
