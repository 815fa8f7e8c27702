package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrLoginInProgress  = errors.New("login already in progress")
	ErrNoToken          = errors.New("no stored token")
	ErrTokenExpired     = errors.New("stored token has expired")
	ErrMalformedToken   = errors.New("stored token is malformed")
	ErrLoginRejected    = errors.New("login rejected")
)

// AuthState is where a Session is in its login lifecycle.
type AuthState int

const (
	Anonymous AuthState = iota
	Authenticating
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Token   string `json:"token"`
}

// Session holds one user's authentication and list state.
// Transitions: Anonymous -> Authenticating -> Authenticated -> Anonymous.
type Session struct {
	c *Client

	mu        sync.Mutex
	state     AuthState
	username  string
	token     string
	expiresAt time.Time
	lists     map[string]*ListState
}

// NewSession returns an anonymous session.
func (c *Client) NewSession() *Session {
	return &Session{c: c}
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	var resp statusResponse
	return c.do(ctx, http.MethodPost, "/api/users?action=register", "", credentials{username, password}, &resp)
}

// Login authenticates and returns an authenticated session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	s := c.NewSession()
	if err := s.Login(ctx, username, password); err != nil {
		return nil, err
	}
	return s, nil
}

// Resume rebuilds a session from the stored token without contacting the
// server. An expired or unreadable token is cleared from the store.
func (c *Client) Resume() (*Session, error) {
	raw, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, ErrNoToken
	}

	username, exp, err := decodeToken(raw)
	if err == nil && !exp.After(c.now()) {
		err = ErrTokenExpired
	}
	if err != nil {
		_ = c.tokens.Clear()
		return nil, err
	}

	s := c.NewSession()
	s.authenticate(username, raw, exp)
	return s, nil
}

// decodeToken reads the username and expiry claims without verifying the
// signature. The server remains the authority on validity.
func decodeToken(raw string) (string, time.Time, error) {
	tokenString := raw
	if scheme, rest, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, "bearer") {
		tokenString = strings.TrimSpace(rest)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	username, _ := claims["username"].(string)
	exp, err := claims.GetExpirationTime()
	if username == "" || err != nil || exp == nil {
		return "", time.Time{}, ErrMalformedToken
	}
	return username, exp.Time, nil
}

// Login moves an anonymous session through Authenticating. On failure the
// session returns to Anonymous.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.state == Authenticating {
		s.mu.Unlock()
		return ErrLoginInProgress
	}
	s.state = Authenticating
	s.mu.Unlock()

	token, exp, err := s.login(ctx, username, password)
	if err != nil {
		s.reset()
		return err
	}
	if err := s.c.tokens.SetToken(token); err != nil {
		s.reset()
		return fmt.Errorf("store token: %w", err)
	}
	s.authenticate(username, token, exp)
	return nil
}

func (s *Session) login(ctx context.Context, username, password string) (string, time.Time, error) {
	var resp statusResponse
	if err := s.c.do(ctx, http.MethodPost, "/api/users", "", credentials{username, password}, &resp); err != nil {
		return "", time.Time{}, err
	}
	if !resp.Success || resp.Token == "" {
		return "", time.Time{}, ErrLoginRejected
	}
	_, exp, err := decodeToken(resp.Token)
	if err != nil {
		return "", time.Time{}, err
	}
	return resp.Token, exp, nil
}

func (s *Session) authenticate(username, token string, exp time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated
	s.username = username
	s.token = token
	s.expiresAt = exp
	s.lists = nil
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Anonymous
	s.username = ""
	s.token = ""
	s.expiresAt = time.Time{}
	s.lists = nil
}

// SignOut returns the session to Anonymous immediately and clears the stored
// token.
func (s *Session) SignOut() error {
	s.reset()
	return s.c.tokens.Clear()
}

func (s *Session) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) IsAuthenticated() bool { return s.State() == Authenticated }

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

func (s *Session) credentials() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return "", "", ErrNotAuthenticated
	}
	return s.username, s.token, nil
}

// authed sends a request with the session token. A 401 from the server means
// the token is no longer accepted, so the session signs out.
func (s *Session) authed(ctx context.Context, method, path string, in, out any) error {
	_, token, err := s.credentials()
	if err != nil {
		return err
	}
	err = s.c.do(ctx, method, path, token, in, out)
	if IsStatus(err, http.StatusUnauthorized) {
		_ = s.SignOut()
	}
	return err
}

// Favorites returns the session's favorites list state.
func (s *Session) Favorites() *ListState { return s.list(listFavorites) }

// Watchlist returns the session's watchlist state.
func (s *Session) Watchlist() *ListState { return s.list(listWatchlist) }

func (s *Session) list(kind string) *ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lists == nil {
		s.lists = make(map[string]*ListState, 2)
	}
	l, ok := s.lists[kind]
	if !ok {
		l = &ListState{s: s, kind: kind}
		s.lists[kind] = l
	}
	return l
}

type reviewRequest struct {
	Author string `json:"author"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// WriteReview posts a review for movieID and returns the stored copy.
func (s *Session) WriteReview(ctx context.Context, movieID int, author, content string, rating int) (*Review, error) {
	var out Review
	path := userReviewsPath(movieID)
	if err := s.authed(ctx, http.MethodPost, path, reviewRequest{author, content, rating}, &out); err != nil {
		return nil, err
	}
	s.c.invalidate(path)
	return &out, nil
}
