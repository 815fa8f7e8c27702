// Package cache holds the in-process upstream response cache used when no
// Redis address is configured.
package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// LRU is a size-bounded response cache with per-entry expiry. It is safe for
// concurrent use.
type LRU struct {
	storage *lru.Cache[string, entry]
	now     func() time.Time
}

// NewLRU returns an LRU holding at most size entries.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{storage: c, now: time.Now}, nil
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := c.storage.Get(key)
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		c.storage.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.storage.Add(key, entry{value: value, expiresAt: c.now().Add(ttl)})
	return nil
}

func (c *LRU) Len() int {
	return c.storage.Len()
}
