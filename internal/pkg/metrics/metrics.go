// Package metrics defines and registers the custom Prometheus metrics of the
// clinic web front end. It is the single source of truth for metric names,
// labels and help strings.
//
// All metrics register with the default registry on import through promauto;
// the promhttp handler mounted at /metrics exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinicweb"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts requests served by the front end.
// Labels:
//   - method: the HTTP method
//   - route: the matched route path (e.g. "/patients/:id/view")
//   - code: the response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures request handling time, section loads included.
// Labels:
//   - method: the HTTP method
//   - route: the matched route path
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts outbound calls to the clinic backend.
// Labels:
//   - operation: the typed client operation (e.g. "login", "list_patients")
//   - outcome: "success", "failure" (non-2xx) or "transport"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// BackendRequestDuration measures backend round trips, including body reads.
// Label:
//   - operation: the typed client operation
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle operations.
// Labels:
//   - event: "restore", "login", "register" or "logout"
//   - result: "ok", "none" (restore without a stored token), "rejected" or "transport"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session operations, by event and result.",
	},
	[]string{"event", "result"},
)

// TokenStoreErrorsTotal counts durable token store failures.
// Label:
//   - op: "load", "save" or "clear"
var TokenStoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_store_errors_total",
		Help:      "Total number of durable token store failures.",
	},
	[]string{"op"},
)

// ── Workspace metrics ─────────────────────────────────────────────────────────

// ActiveWorkspaces tracks the number of browser workspaces held in memory.
var ActiveWorkspaces = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_workspaces",
		Help:      "Current number of in-memory browser workspaces.",
	},
)

// WorkspacesEvictedTotal counts workspaces dropped by the idle sweeper.
var WorkspacesEvictedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workspaces_evicted_total",
		Help:      "Total number of idle workspaces evicted.",
	},
)

// NotificationsTotal counts notifications raised.
// Label:
//   - severity: "success", "error", "warning" or "info"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications shown, by severity.",
	},
	[]string{"severity"},
)

// RateLimitedTotal counts requests refused by the auth rate limiter.
// Label:
//   - route: the matched route path
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"route"},
)
