package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("POST", "/api/v1/orders", 201, 20*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/orders", 201, 30*time.Millisecond)
	m.ObserveRequest("GET", "", 200, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/orders", "201")); got != 2 {
		t.Fatalf("expected 2 order requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "200")); got != 1 {
		t.Fatalf("expected unmatched route label, got %v", got)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	t.Parallel()

	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	unregistered := NewHTTPMetrics(nil)
	unregistered.ObserveRequest("GET", "/", 200, time.Millisecond)
}
