package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/orders", http.StatusCreated, 15*time.Millisecond)
	m.ObserveRequest("/api/orders", http.StatusCreated, 5*time.Millisecond)
	m.OrderCreated()
	m.StatusChanged("COMPLETED")

	out := scrape(t, m)
	for _, want := range []string{
		`coffeeshop_http_requests_total{handler="/api/orders",status="201"} 2`,
		`coffeeshop_http_request_duration_seconds_count{handler="/api/orders"} 2`,
		`coffeeshop_orders_created_total 1`,
		`coffeeshop_order_status_changes_total{status="COMPLETED"} 1`,
		`go_goroutines`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected exposition to contain %q", want)
		}
	}
}

func TestMetricsUsePrivateRegistry(t *testing.T) {
	// Two instances must not panic on duplicate registration.
	a, b := New(), New()
	a.OrderCreated()
	if strings.Contains(scrape(t, b), "coffeeshop_orders_created_total 1") {
		t.Fatal("expected registries to be independent")
	}
}

func TestModuleProvidesMetrics(t *testing.T) {
	var m *Metrics
	app := fxtest.New(t, fx.NopLogger, Module, fx.Populate(&m))
	defer app.RequireStart().RequireStop()
	if m == nil {
		t.Fatal("expected metrics to be provided")
	}
}
