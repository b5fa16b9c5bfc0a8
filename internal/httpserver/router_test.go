package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-customers/internal/metrics"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error {
	return s.err
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.CustomerSvc == nil {
		deps.CustomerSvc = &stubCustomerService{}
	}
	router, err := buildRouter(zap.NewNop(), deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestBuildRouter_RequiresService(t *testing.T) {
	if _, err := buildRouter(zap.NewNop(), Deps{}); err == nil {
		t.Fatalf("expected error without customer service")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, Deps{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	cases := []struct {
		name  string
		store Pinger
		want  int
	}{
		{"ready", &stubPinger{}, http.StatusOK},
		{"unreachable", &stubPinger{err: errors.New("down")}, http.StatusServiceUnavailable},
		{"not configured", nil, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, Deps{Store: tc.store})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	router := newTestRouter(t, Deps{Metrics: m})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `customers_http_requests_total{method="GET",route="/customers",status="200"} 1`) {
		t.Fatalf("request counter missing from metrics output")
	}
}

func TestMetricsEndpoint_DisabledWithoutMetrics(t *testing.T) {
	router := newTestRouter(t, Deps{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCORS_AllowsAnyOriginByDefault(t *testing.T) {
	router := newTestRouter(t, Deps{})
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	router := newTestRouter(t, Deps{AllowOrigins: []string{"https://admin.example"}})

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Origin", "https://admin.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for foreign origin, got %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t, Deps{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}
