package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_OrderCounters(t *testing.T) {
	m := NewMetrics()

	m.ObservePlaced("Medium", 3, 10.0)
	m.ObservePlaced("Medium", 2, 8.5)
	m.ObservePlaced("Large", 1, 10.0)
	m.ObserveCancelled(2)
	m.ObserveRejected(true)
	m.ObserveRejected(false)
	m.ObserveRejected(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced.WithLabelValues("Medium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersPlaced.WithLabelValues("Large")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.portionsReserved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCancelled))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.portionsRestored))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersRejected.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersRejected.WithLabelValues("false")))
}

func TestMetrics_HTTP(t *testing.T) {
	m := NewMetrics()

	m.ObserveHTTP(http.MethodGet, "/api/dishes", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "/api/dishes", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodPost, "/api/orders", http.StatusBadRequest, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/dishes", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/orders", "400")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObservePlaced("Small", 1, 6.0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `webapp_orders_placed_total{size="Small"} 1`)
	assert.Contains(t, body, "webapp_orders_total_price_euros_bucket")
	assert.Contains(t, body, "go_goroutines")
}
