package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/core/ports"
	"github.com/moviesapp/movies-api/internal/pkg/metrics"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// TokenScheme prefixes the token returned by Login. Clients send the whole
// string back as the Authorization header.
const TokenScheme = "BEARER"

// dummyHash is compared against when the user does not exist, so unknown
// usernames take as long to reject as wrong passwords.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("dummy-password-1!"), PasswordCost)
	return h
})

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	lists     ports.ListRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(users ports.UserRepository, lists ports.ListRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		lists:     lists,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Register creates the account and its empty favorites and watchlist.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.register(ctx, strings.TrimSpace(username), password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return nil, err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return user, nil
}

func (s *AuthService) register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	// Lists are also upserted on first add, so a failure here is not fatal.
	for _, kind := range domain.ListKinds {
		if err := s.lists.Ensure(ctx, kind, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Str("list", string(kind)).Msg("create empty list failed")
		}
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and returns "BEARER <jwt>". Unknown users
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	token, err := s.login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return "", err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return token, nil
}

func (s *AuthService) login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return TokenScheme + " " + token, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
