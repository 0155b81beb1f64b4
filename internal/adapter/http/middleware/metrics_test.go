package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/gaapledger/internal/infrastructure/metrics"
)

type observedRequest struct {
	method string
	route  string
	status int
}

type fakeObserver struct {
	started  int
	finished []observedRequest
}

func (f *fakeObserver) RequestStarted() { f.started++ }

func (f *fakeObserver) RequestFinished(method, route string, status int, _ time.Duration) {
	f.finished = append(f.finished, observedRequest{method: method, route: route, status: status})
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		wantRoute  string
		statusCode int
	}{
		{
			name:       "uses route pattern for book path",
			method:     http.MethodGet,
			path:       "/api/v1/books/01HZXBOOK",
			wantRoute:  "/api/v1/books/{bookID}",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "nested account pattern",
			method:     http.MethodGet,
			path:       "/api/v1/books/b1/accounts/7",
			wantRoute:  "/api/v1/books/{bookID}/accounts/{accountID}",
			statusCode: http.StatusOK,
		},
		{
			name:       "static route",
			method:     http.MethodPost,
			path:       "/health",
			wantRoute:  "/health",
			statusCode: http.StatusCreated,
		},
		{
			name:       "unmatched path",
			method:     http.MethodGet,
			path:       "/nope",
			wantRoute:  "unmatched",
			statusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			observer := &fakeObserver{}
			respond := func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			}

			r := chi.NewRouter()
			r.Use(Metrics(observer))
			r.Get("/api/v1/books/{bookID}", respond)
			r.Get("/api/v1/books/{bookID}/accounts/{accountID}", respond)
			r.Post("/health", respond)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))

			if observer.started != 1 {
				t.Fatalf("expected 1 started request, got %d", observer.started)
			}
			if len(observer.finished) != 1 {
				t.Fatalf("expected 1 finished request, got %d", len(observer.finished))
			}
			got := observer.finished[0]
			want := observedRequest{method: tc.method, route: tc.wantRoute, status: tc.statusCode}
			if got != want {
				t.Fatalf("observed %+v, want %+v", got, want)
			}
		})
	}
}

func TestMetricsMiddlewareWithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/v1/books/{bookID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/books/"+id, nil))
	}

	expected := `
# HELP gaapledger_http_requests_total Total HTTP requests
# TYPE gaapledger_http_requests_total counter
gaapledger_http_requests_total{method="GET",route="/api/v1/books/{bookID}",status="200"} 3
`
	if err := testutil.CollectAndCompare(m.HTTPRequests, strings.NewReader(expected)); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
	if got := testutil.ToFloat64(m.HTTPInFlight); got != 0 {
		t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
	}
}
