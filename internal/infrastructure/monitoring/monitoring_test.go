package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, o.(prometheus.Metric).Write(m))
	return m.GetHistogram().GetSampleCount()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestGetGuardType(t *testing.T) {
	assert.Equal(t, "checkout", getGuardType("checkout:avuryeda:abc"))
	assert.Equal(t, "quick-order", getGuardType("quick-order:care-ayurveda:abc"))
	assert.Equal(t, "other", getGuardType("misc:1"))
	assert.Equal(t, "unknown", getGuardType("nocolon"))
}

func TestBusinessMetricsCounters(t *testing.T) {
	m := NewBusinessMetrics()

	before := counterValue(t, DeepLinksTotal.WithLabelValues("metrics-test", "call"))
	m.DeepLink("metrics-test", "call")
	m.DeepLink("metrics-test", "call")
	assert.Equal(t, before+2, counterValue(t, DeepLinksTotal.WithLabelValues("metrics-test", "call")))

	before = counterValue(t, CheckoutFailureTotal.WithLabelValues("metrics-test", "cart", "empty_cart"))
	m.CheckoutFailure("metrics-test", "cart", "empty_cart")
	assert.Equal(t, before+1, counterValue(t, CheckoutFailureTotal.WithLabelValues("metrics-test", "cart", "empty_cart")))
}

func TestHTTPMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler { return WrapHandler(next) })
	r.Get("/storefronts/{variant}/cart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues("/storefronts/{variant}/cart", http.MethodGet, "418")
	before := counterValue(t, counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storefronts/avuryeda/cart", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestHTTPMiddlewareObservesDuration(t *testing.T) {
	r := chi.NewRouter()
	r.Use(WrapHandler)
	r.Post("/storefronts/{variant}/checkout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	hist := HTTPRequestDuration.WithLabelValues("/storefronts/{variant}/checkout", http.MethodPost, "429")
	before := histogramCount(t, hist)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/storefronts/care-ayurveda/checkout", nil))

	assert.Equal(t, before+1, histogramCount(t, hist))
}

func TestRedisHookTimesCommands(t *testing.T) {
	mr := miniredis.RunT(t)
	client := InstrumentRedisClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	set := RedisCommandDuration.WithLabelValues("set")
	pipeline := RedisCommandDuration.WithLabelValues("pipeline")
	beforeSet, beforePipeline := histogramCount(t, set), histogramCount(t, pipeline)

	require.NoError(t, client.Set(ctx, "avuryeda_cart:s1", "[]", 0).Err())
	_, err := client.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Get(ctx, "avuryeda_cart:s1")
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, beforeSet+1, histogramCount(t, set))
	assert.Equal(t, beforePipeline+1, histogramCount(t, pipeline))
}
