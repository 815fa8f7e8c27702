package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

type stubListService struct {
	getFn    func(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error)
	addFn    func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error)
	removeFn func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error)
}

func (s *stubListService) Get(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error) {
	return s.getFn(ctx, kind, username)
}

func (s *stubListService) Add(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
	return s.addFn(ctx, kind, actor, username, ids)
}

func (s *stubListService) Remove(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
	return s.removeFn(ctx, kind, actor, username, ids)
}

func listContext(method, username, actor, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := newEcho()
	req := httptest.NewRequest(method, "/api/favorites/"+username, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues(username)
	if actor != "" {
		c.Set(ContextUsername, actor)
	}
	return c, rec
}

func TestListHandler_Get(t *testing.T) {
	stub := &stubListService{
		getFn: func(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error) {
			if kind != domain.ListFavorites || username != "user1" {
				t.Fatalf("unexpected args: %s %s", kind, username)
			}
			return &domain.MovieList{Username: "user1", Movies: []int{27205}}, nil
		},
	}
	c, rec := listContext(http.MethodGet, "user1", "user1", "")

	if err := NewListHandler(domain.ListFavorites, stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.MovieList
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Username != "user1" || len(resp.Movies) != 1 || resp.Movies[0] != 27205 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestListHandler_Get_UnknownUser(t *testing.T) {
	stub := &stubListService{
		getFn: func(ctx context.Context, kind domain.ListKind, username string) (*domain.MovieList, error) {
			return nil, domain.ErrListNotFound
		},
	}
	c, rec := listContext(http.MethodGet, "unknown_user", "user1", "")

	_ = NewListHandler(domain.ListFavorites, stub).Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) || !strings.Contains(rec.Body.String(), msgUserNotFound) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListHandler_Add_ReturnsServerList(t *testing.T) {
	stub := &stubListService{
		addFn: func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
			if kind != domain.ListWatchlist || actor != "user1" || username != "user1" {
				t.Fatalf("unexpected args: %s %s %s", kind, actor, username)
			}
			if len(ids) != 2 || ids[0] != 27205 || ids[1] != 27205 {
				t.Fatalf("unexpected ids: %v", ids)
			}
			return &domain.MovieList{Username: "user1", Movies: []int{27205}}, nil
		},
	}
	c, rec := listContext(http.MethodPut, "user1", "user1", `[27205, 27205]`)

	if err := NewListHandler(domain.ListWatchlist, stub).Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `[27205]` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListHandler_Add_SingleID(t *testing.T) {
	stub := &stubListService{
		addFn: func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
			return &domain.MovieList{Movies: ids}, nil
		},
	}
	c, rec := listContext(http.MethodPut, "user1", "user1", `550`)

	_ = NewListHandler(domain.ListFavorites, stub).Add(c)

	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `[550]` {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestListHandler_Add_BadBody(t *testing.T) {
	stub := &stubListService{
		addFn: func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := listContext(http.MethodPut, "user1", "user1", `{"id":"x"}`)

	_ = NewListHandler(domain.ListFavorites, stub).Add(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListHandler_Add_Forbidden(t *testing.T) {
	stub := &stubListService{
		addFn: func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
			return nil, domain.ErrForbidden
		},
	}
	c, rec := listContext(http.MethodPut, "user1", "user2", `1`)

	_ = NewListHandler(domain.ListFavorites, stub).Add(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestListHandler_Add_Unauthenticated(t *testing.T) {
	c, _ := listContext(http.MethodPut, "user1", "", `1`)

	err := NewListHandler(domain.ListFavorites, &stubListService{}).Add(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestListHandler_Remove(t *testing.T) {
	stub := &stubListService{
		removeFn: func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
			if len(ids) != 1 || ids[0] != 27205 {
				t.Fatalf("unexpected ids: %v", ids)
			}
			return &domain.MovieList{Movies: []int{}}, nil
		},
	}
	c, rec := listContext(http.MethodDelete, "user1", "user1", `27205`)

	if err := NewListHandler(domain.ListFavorites, stub).Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `[]` {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestListHandler_Remove_NoList(t *testing.T) {
	stub := &stubListService{
		removeFn: func(ctx context.Context, kind domain.ListKind, actor, username string, ids []int) (*domain.MovieList, error) {
			return nil, domain.ErrListNotFound
		},
	}
	c, rec := listContext(http.MethodDelete, "user1", "user1", `27205`)

	_ = NewListHandler(domain.ListFavorites, stub).Remove(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
