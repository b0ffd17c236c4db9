// Package metrics declares the Prometheus collectors of the service.
// Collectors are registered in the default registry and exposed by the
// /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels of AuthAttempts.
const (
	AuthSuccess      = "success"
	AuthInvalidToken = "invalid_token"
	AuthInvalidScope = "invalid_scope"
	AuthRevoked      = "revoked"
	AuthUnknownUser  = "unknown_user"
	AuthInactive     = "inactive"
	AuthError        = "error"
)

// Outcome labels of UserCacheLookups.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	// HTTPRequestsTotal counts served HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photoshare_http_requests_total",
			Help: "Total number of HTTP requests served by the API",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photoshare_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AuthAttempts counts bearer token authentications by outcome.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photoshare_auth_attempts_total",
			Help: "Total number of bearer token authentications by result",
		},
		[]string{"result"},
	)

	// UserCacheLookups counts user cache lookups by outcome.
	UserCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photoshare_user_cache_lookups_total",
			Help: "Total number of user cache lookups by result",
		},
		[]string{"result"},
	)

	// EmailJobs counts e-mail jobs by delivery path and outcome.
	EmailJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photoshare_email_jobs_total",
			Help: "Total number of e-mail jobs by delivery path and result",
		},
		[]string{"path", "result"},
	)

	// BlacklistPruned counts blacklist entries removed by the pruner.
	BlacklistPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photoshare_blacklist_pruned_total",
			Help: "Total number of expired blacklist entries removed",
		},
	)
)
