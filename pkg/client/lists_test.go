package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedIn(t *testing.T) (*fakeAPI, *Session) {
	t.Helper()
	f, srv := newFakeAPI(t)
	s, err := New(srv.URL, Options{}).Login(context.Background(), "user1", "test123@")
	require.NoError(t, err)
	return f, s
}

func TestListState_LoadsLazily(t *testing.T) {
	f, s := loggedIn(t)
	ctx := context.Background()

	assert.Equal(t, 0, f.count("/api/favorites/user1"))

	ids, err := s.Favorites().IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{}, ids)

	_, err = s.Favorites().IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count("/api/favorites/user1"))
}

func TestListState_AddAdoptsServerList(t *testing.T) {
	_, s := loggedIn(t)
	ctx := context.Background()
	fav := s.Favorites()

	require.NoError(t, fav.Add(ctx, 27205, 27205))
	require.NoError(t, fav.Add(ctx, 550))

	ids, err := fav.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{27205, 550}, ids)
	assert.True(t, fav.Contains(550))

	require.NoError(t, fav.Remove(ctx, 27205, 999))
	ids, err = fav.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{550}, ids)
}

func TestListState_KindsAreSeparate(t *testing.T) {
	_, s := loggedIn(t)
	ctx := context.Background()

	require.NoError(t, s.Watchlist().Add(ctx, 1))

	fav, err := s.Favorites().IDs(ctx)
	require.NoError(t, err)
	watch, err := s.Watchlist().IDs(ctx)
	require.NoError(t, err)

	assert.Empty(t, fav)
	assert.Equal(t, []int{1}, watch)
}

func TestListState_FailureKeepsLocalState(t *testing.T) {
	_, s := loggedIn(t)
	ctx := context.Background()
	fav := s.Favorites()
	require.NoError(t, fav.Add(ctx, 1))

	err := fav.Add(ctx)
	assert.True(t, IsStatus(err, http.StatusBadRequest))

	ids, err := fav.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)
}

func TestListState_RejectedTokenSignsOut(t *testing.T) {
	f, s := loggedIn(t)
	f.revoked.Store(true)

	err := s.Favorites().Add(context.Background(), 1)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, Anonymous, s.State())
}
