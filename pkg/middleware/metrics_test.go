package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/webkit/pkg/session"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetrics(WithRegistry(reg)), reg
}

func TestMetricsHandler(t *testing.T) {
	m, reg := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	r.Get("/plain", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/items/1", "/items/2", "/plain", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/items/{id}", "202")); got != 2 {
		t.Errorf("requests_total{/items/{id},202} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/plain", "200")); got != 1 {
		t.Errorf("requests_total{/plain,200} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.requestDuration); got != 3 {
		t.Errorf("duration series = %d, want 3", got)
	}

	n, err := testutil.GatherAndCount(reg, "webkit_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 3 {
		t.Errorf("requests_total series = %d, want 3", n)
	}
}

func TestMetricsHandlerOutsideChi(t *testing.T) {
	m, _ := newTestMetrics(t)
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/raw/path", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("unmatched", "200")); got != 1 {
		t.Errorf("requests_total{unmatched,200} = %v, want 1", got)
	}
}

func TestObservers(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveParamCheck(true)
	m.ObserveParamCheck(false)
	m.ObserveParamCheck(false)
	if got := testutil.ToFloat64(m.paramChecks.WithLabelValues("accepted")); got != 1 {
		t.Errorf("accepted = %v", got)
	}
	if got := testutil.ToFloat64(m.paramChecks.WithLabelValues("rejected")); got != 2 {
		t.Errorf("rejected = %v", got)
	}

	m.ObserveDecodeError()
	if got := testutil.ToFloat64(m.decodeErrors); got != 1 {
		t.Errorf("decode errors = %v", got)
	}

	store := session.NewMemoryStore()
	defer store.Close()
	mgr := session.NewManager(session.Config{Store: store, OnStart: m.ObserveSessionStart})
	rec := httptest.NewRecorder()
	if _, err := mgr.Start(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	if _, err := mgr.Start(httptest.NewRecorder(), req); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if got := testutil.ToFloat64(m.sessionsStarted.WithLabelValues("new")); got != 1 {
		t.Errorf("new sessions = %v", got)
	}
	if got := testutil.ToFloat64(m.sessionsStarted.WithLabelValues("resumed")); got != 1 {
		t.Errorf("resumed sessions = %v", got)
	}
}

func TestMetricsOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(
		WithRegistry(reg),
		WithNamespace("app"),
		WithSubsystem("http"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, time.Second.Seconds()}),
	)
	m.ObserveDecodeError()

	n, err := testutil.GatherAndCount(reg, "app_http_decode_errors_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 1 {
		t.Errorf("series = %d, want 1", n)
	}
}
