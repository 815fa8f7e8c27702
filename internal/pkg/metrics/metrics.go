// Package metrics defines the custom Prometheus metrics for the movies API.
// Every metric is registered with the default registry on package init via
// promauto and exposed on GET /metrics. Per-request HTTP metrics come from
// echoprometheus in the middleware package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric. HTTP request metrics use it too, under
// the "http" subsystem.
const Namespace = "movies"

// ── Upstream catalog ─────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the movie database.
// Labels:
//   - resource: catalog resource (e.g. "movie_details", "discover")
//   - outcome: "ok", "http_error", "transport_error", "decode_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream catalog requests, by resource and outcome.",
	},
	[]string{"resource", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip time.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream catalog requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource"},
)

// CatalogCacheTotal counts response cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog response cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Lists & auth ─────────────────────────────────────────────────────────────

// ListMutationsTotal counts successful list changes.
// Labels:
//   - list: "favorites" or "watchlist"
//   - op: "add" or "remove"
var ListMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "list_mutations_total",
		Help:      "Total number of list mutations, by list and operation.",
	},
	[]string{"list", "op"},
)

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - action: "register" or "login"
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and outcome.",
	},
	[]string{"action", "outcome"},
)
