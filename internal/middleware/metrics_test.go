package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"kanban-board-api/internal/metrics"
)

func setupMetricsRouter() (*gin.Engine, *prometheus.Registry) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())

	router := gin.New()
	router.Use(Metrics(m))
	return router, registry
}

func countSamples(t *testing.T, registry *prometheus.Registry, name string) int {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			total := 0
			for _, m := range mf.GetMetric() {
				total += int(m.GetCounter().GetValue())
			}
			return total
		}
	}
	return 0
}

func TestMetricsMiddleware_RecordsRequests(t *testing.T) {
	router, registry := setupMetricsRouter()

	router.GET("/api/v1/projects", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/api/v1/cards", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/projects", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
	req := httptest.NewRequest("POST", "/api/v1/cards", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	got := countSamples(t, registry, "kanban_api_http_requests_total")
	if got != 4 {
		t.Errorf("Expected 4 recorded requests, got %d", got)
	}
}

func TestMetricsMiddleware_SkipsExcludedEndpoints(t *testing.T) {
	router, registry := setupMetricsRouter()

	router.GET("/metrics", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/metrics", "/health"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200 for %s, got %d", path, w.Code)
		}
	}

	if got := countSamples(t, registry, "kanban_api_http_requests_total"); got != 0 {
		t.Errorf("Expected excluded endpoints to record nothing, got %d samples", got)
	}
}

func TestMetricsMiddleware_RecordsErrorStatuses(t *testing.T) {
	router, registry := setupMetricsRouter()

	router.GET("/api/v1/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/api/v1/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	if got := countSamples(t, registry, "kanban_api_http_requests_total"); got != 1 {
		t.Errorf("Expected 1 recorded request, got %d", got)
	}
}
