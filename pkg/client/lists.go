package client

import (
	"context"
	"net/http"
	"slices"
	"sync"
)

const (
	listFavorites = "favorites"
	listWatchlist = "watchlist"
)

// ListState is the client copy of one of the user's lists. Mutations wait for
// the server and then adopt the list it returns, so local state never runs
// ahead of what was persisted.
type ListState struct {
	s    *Session
	kind string

	mu     sync.Mutex
	loaded bool
	ids    []int
}

func (l *ListState) path() (string, error) {
	username, _, err := l.s.credentials()
	if err != nil {
		return "", err
	}
	return "/api/" + l.kind + "/" + username, nil
}

// Load fetches the list from the server, replacing local state.
func (l *ListState) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *ListState) load(ctx context.Context) error {
	path, err := l.path()
	if err != nil {
		return err
	}
	var out struct {
		Movies []int `json:"movies"`
	}
	if err := l.s.authed(ctx, http.MethodGet, path, nil, &out); err != nil {
		return err
	}
	l.replace(out.Movies)
	return nil
}

func (l *ListState) replace(ids []int) {
	if ids == nil {
		ids = []int{}
	}
	l.ids = ids
	l.loaded = true
}

// IDs returns the list, loading it on first use.
func (l *ListState) IDs(ctx context.Context) ([]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		if err := l.load(ctx); err != nil {
			return nil, err
		}
	}
	return slices.Clone(l.ids), nil
}

// Contains reports whether id is in the locally known list. It does not load.
func (l *ListState) Contains(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(l.ids, id)
}

// Add puts ids into the list on the server.
func (l *ListState) Add(ctx context.Context, ids ...int) error {
	return l.mutate(ctx, http.MethodPut, ids)
}

// Remove takes ids out of the list on the server.
func (l *ListState) Remove(ctx context.Context, ids ...int) error {
	return l.mutate(ctx, http.MethodDelete, ids)
}

func (l *ListState) mutate(ctx context.Context, method string, ids []int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	path, err := l.path()
	if err != nil {
		return err
	}
	var out []int
	if err := l.s.authed(ctx, method, path, ids, &out); err != nil {
		return err
	}
	l.replace(out)
	return nil
}
