package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collabhub_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPInFlight tracks requests currently being served.
	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collabhub_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// JoinRequests counts join request submissions by outcome (created|member|duplicate|error).
	JoinRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabhub_join_requests_total",
			Help: "Total number of team join request submissions",
		},
		[]string{"result"},
	)

	// JoinResolutions counts resolved join requests by action (accept|reject).
	JoinResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabhub_join_resolutions_total",
			Help: "Total number of resolved team join requests",
		},
		[]string{"action"},
	)

	// TeamsCreated counts created teams.
	TeamsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collabhub_teams_created_total",
			Help: "Total number of teams created",
		},
	)

	// CacheLookups counts cache reads by outcome (hit|miss|error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabhub_cache_lookups_total",
			Help: "Total number of cache lookups",
		},
		[]string{"key", "result"},
	)

	// MaintenanceRuns counts maintenance job executions by job and result.
	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabhub_maintenance_runs_total",
			Help: "Total number of maintenance job executions",
		},
		[]string{"job", "result"},
	)
)
