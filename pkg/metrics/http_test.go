package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/countries/getAll", 200, 15*time.Millisecond)
	m.Observe("GET", "/api/countries/getAll", 200, 5*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "astro_http_requests_total", "route", "/api/countries/getAll"); err != nil || got != 2 {
		t.Fatalf("expected 2 requests, got %f err %v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "astro_http_requests_total", "route", "unmatched"); err != nil || got != 1 {
		t.Fatalf("expected 1 unmatched, got %f err %v", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "astro_http_request_duration_seconds", "route", "/api/countries/getAll"); err != nil || got < 0.019 {
		t.Fatalf("unexpected latency sum %f err %v", got, err)
	}

	var nilMetrics *HTTPMetrics
	nilMetrics.Observe("GET", "/", 200, time.Millisecond)
}
