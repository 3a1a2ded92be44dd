// Package metrics defines the custom Prometheus metrics for the dashboard
// gateway. It is the single source of truth for metric names, labels, and
// help strings; collectors register themselves with the default registry at
// init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// UpstreamRequestsTotal counts calls made to the inventory API.
// Labels:
//   - endpoint: the API path, without IDs (e.g. "/api/category/getCategories")
//   - method: HTTP method
//   - outcome: "ok", "rejected" (success:false envelope) or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the inventory API.",
	},
	[]string{"endpoint", "method", "outcome"},
)

// UpstreamRequestDuration measures the round-trip time of inventory API calls.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of inventory API round-trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// CacheLookupsTotal counts read-cache lookups.
// Label:
//   - result: "hit" (served from cache), "miss" (issued a request) or
//     "join" (awaited a request already in flight for the same key)
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of read-cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// CacheInvalidationsTotal counts cache entries marked stale after mutations.
var CacheInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache keys invalidated after successful mutations.",
	},
)

// SessionsStartedTotal counts successful logins.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions created by successful logins.",
	},
)

// SessionsEndedTotal counts logouts.
var SessionsEndedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of sessions ended by logout.",
	},
)

// LoginFailuresTotal counts rejected or failed login attempts.
// Label:
//   - reason: "rejected" (API said no) or "error" (transport failure)
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts, by reason.",
	},
	[]string{"reason"},
)
