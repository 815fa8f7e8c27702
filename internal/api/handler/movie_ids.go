package handler

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/moviesapp/movies-api/internal/core/domain"
)

const maxListBodyBytes = 64 << 10

// decodeMovieIDs accepts either a single id (27205) or an array of ids
// ([27205, 550]) and returns them as a slice.
func decodeMovieIDs(r io.Reader) ([]int, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxListBodyBytes))
	if err != nil {
		return nil, domain.ErrInvalidIDs
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, domain.ErrInvalidIDs
	}

	var ids []int
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, domain.ErrInvalidIDs
		}
	} else {
		var id int
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, domain.ErrInvalidIDs
		}
		ids = []int{id}
	}

	if len(ids) == 0 {
		return nil, domain.ErrInvalidIDs
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, domain.ErrInvalidIDs
		}
	}
	return ids, nil
}
