// Package tmdb is the HTTP client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moviesapp/movies-api/internal/core/domain"
	"github.com/moviesapp/movies-api/internal/pkg/metrics"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client fetches catalog resources and returns their JSON bodies verbatim.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET against the catalog. Any non-2xx status, transport
// failure or non-JSON body is reported as domain.ErrUpstream; callers log.
func (c *Client) Fetch(ctx context.Context, req domain.CatalogRequest) (json.RawMessage, error) {
	path, q, err := buildPath(req)
	if err != nil {
		return nil, err
	}
	q.Set("api_key", c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resource := string(req.Resource)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.UpstreamRequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "transport_error").Inc()
		// url.Error carries the full URL, api_key included.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "transport_error").Inc()
		return nil, fmt.Errorf("%w: %s: read body: %v", domain.ErrUpstream, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "http_error").Inc()
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrUpstream, path, resp.StatusCode)
	}

	if !json.Valid(body) {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "decode_error").Inc()
		return nil, fmt.Errorf("%w: %s: invalid json", domain.ErrUpstream, path)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(resource, "ok").Inc()
	return json.RawMessage(body), nil
}
