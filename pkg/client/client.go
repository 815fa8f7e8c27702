// Package client is a typed Go client for the movies API.
//
// It covers the catalog proxy, accounts, lists and reviews. Catalog GETs go
// through a shared query cache with one staleness window; list state lives
// in explicit Session values rather than globals.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long a cached catalog response is served before it
// is fetched again.
const DefaultStaleTime = 6 * time.Minute

const defaultTimeout = 15 * time.Second

// Options tunes a Client. The zero value is usable.
type Options struct {
	HTTPClient *http.Client
	// Tokens persists the session token. Defaults to an in-memory store.
	Tokens TokenStore
	// StaleTime overrides DefaultStaleTime. Negative disables caching.
	StaleTime time.Duration
}

// Client talks to one movies API deployment. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	queries *cache.Cache
	group   singleflight.Group
	now     func() time.Time
}

func New(baseURL string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	stale := opts.StaleTime
	if stale == 0 {
		stale = DefaultStaleTime
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		now:     time.Now,
	}
	if stale > 0 {
		c.queries = cache.New(stale, 2*stale)
	}
	return c
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("movies api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("movies api: status %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// errorBody covers both failure envelopes the server uses.
type errorBody struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}

// InvalidateQueries drops every cached catalog response.
func (c *Client) InvalidateQueries() {
	if c.queries != nil {
		c.queries.Flush()
	}
}

// query performs a cached GET. Identical concurrent queries share one
// request, which keeps running if the caller that started it gives up.
func (c *Client) query(ctx context.Context, path string, out any) error {
	if c.queries == nil {
		return c.do(ctx, http.MethodGet, path, "", nil, out)
	}
	if body, ok := c.queries.Get(path); ok {
		return json.Unmarshal(body.([]byte), out)
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(path, func() (interface{}, error) {
		var raw json.RawMessage
		if err := c.do(shared, http.MethodGet, path, "", nil, &raw); err != nil {
			return nil, err
		}
		body := []byte(raw)
		c.queries.SetDefault(path, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), out)
	}
}

func (c *Client) invalidate(path string) {
	if c.queries != nil {
		c.queries.Delete(path)
	}
}

// do sends one request. token is sent verbatim as the Authorization header
// when non-empty; in is JSON-encoded when non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Msg
			if apiErr.Message == "" {
				apiErr.Message = eb.Error
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
