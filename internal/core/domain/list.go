package domain

// ListKind names one of the per-user movie lists.
type ListKind string

const (
	ListFavorites ListKind = "favorites"
	ListWatchlist ListKind = "watchlist"
)

// ListKinds is every list a user owns. Registration creates one of each.
var ListKinds = []ListKind{ListFavorites, ListWatchlist}

func (k ListKind) Valid() bool {
	return k == ListFavorites || k == ListWatchlist
}

// MovieList is a user's set of TMDB movie ids for one list kind.
type MovieList struct {
	Kind     ListKind `json:"-"`
	Username string   `json:"username"`
	Movies   []int    `json:"movies"`
}

// Contains reports whether id is already in the list.
func (l *MovieList) Contains(id int) bool {
	for _, m := range l.Movies {
		if m == id {
			return true
		}
	}
	return false
}

// DedupIDs returns ids with repeats removed, keeping first-seen order.
func DedupIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
