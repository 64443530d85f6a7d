package monitoring

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of persisted cart mutations",
		},
		[]string{"storefront", "operation"},
	)

	CheckoutAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"storefront", "kind"},
	)

	CheckoutSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Total number of composed orders",
		},
		[]string{"storefront", "kind"},
	)

	CheckoutFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Total number of rejected checkouts",
		},
		[]string{"storefront", "kind", "reason"},
	)

	DeepLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deep_links_total",
			Help: "Total number of contact deep links handed out",
		},
		[]string{"storefront", "channel"},
	)

	CatalogProducts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the served catalog",
		},
		[]string{"storefront"},
	)

	CatalogRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refresh_total",
			Help: "Total number of catalog refreshes",
		},
		[]string{"result"},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	SubmitGuardAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submit_guard_attempts_total",
			Help: "Total number of submit guard acquisitions",
		},
		[]string{"guard_type"},
	)

	SubmitGuardSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submit_guard_success_total",
			Help: "Total number of granted submissions",
		},
		[]string{"guard_type"},
	)

	SubmitGuardFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submit_guard_failure_total",
			Help: "Total number of rejected submissions",
		},
		[]string{"guard_type", "reason"},
	)
)

// TimeHTTPRequest starts timing a request. The route is labelled when the
// request finishes because chi resolves the pattern while routing.
func TimeHTTPRequest(method string) func(handler, statusCode string) {
	start := time.Now()
	return func(handler, statusCode string) {
		duration := time.Since(start).Seconds()
		HTTPRequestDuration.WithLabelValues(handler, method, statusCode).Observe(duration)
		HTTPRequestsTotal.WithLabelValues(handler, method, statusCode).Inc()
	}
}

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func TimeRedisCommand(command string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		RedisCommandDuration.WithLabelValues(command).Observe(duration)
	}
}

func RecordCatalogRefresh(ok bool) {
	if ok {
		CatalogRefreshTotal.WithLabelValues("success").Inc()
		return
	}
	CatalogRefreshTotal.WithLabelValues("failure").Inc()
}

func SetCatalogProducts(storefront string, count int) {
	CatalogProducts.WithLabelValues(storefront).Set(float64(count))
}

func RecordGuardAttempt(key string) {
	SubmitGuardAttemptsTotal.WithLabelValues(getGuardType(key)).Inc()
}

func RecordGuardSuccess(key string) {
	SubmitGuardSuccessTotal.WithLabelValues(getGuardType(key)).Inc()
}

func RecordGuardFailure(key, reason string) {
	SubmitGuardFailureTotal.WithLabelValues(getGuardType(key), reason).Inc()
}

// getGuardType keeps label cardinality bounded by dropping the session part
// of keys like "checkout:<storefront>:<session>".
func getGuardType(key string) string {
	prefix, _, found := strings.Cut(key, ":")
	if !found {
		return "unknown"
	}

	switch prefix {
	case "checkout", "quick-order":
		return prefix
	default:
		return "other"
	}
}
