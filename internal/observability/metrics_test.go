package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	r := gin.New()
	r.Use(collector.Middleware())
	r.GET("/v1/staticmap/url", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"url": "https://example"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/staticmap/url", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/v1/staticmap/url", "200"))
	if got != 1 {
		t.Errorf("mapsnap_http_requests_total = %v, want 1", got)
	}
}

func TestMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	r := gin.New()
	r.Use(collector.Middleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("unmatched", "404"))
	if got != 1 {
		t.Errorf("unmatched counter = %v, want 1", got)
	}
}

func TestPipelineCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	collector.URLBuilt("markers")
	collector.URLBuilt("markers")
	collector.ImageFetched("ok")

	if got := testutil.ToFloat64(collector.URLsBuilt.WithLabelValues("markers")); got != 2 {
		t.Errorf("urls built = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.ImagesFetched.WithLabelValues("ok")); got != 1 {
		t.Errorf("images fetched = %v, want 1", got)
	}
}

func TestNewCollectorIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("second NewCollector on same registry: %v", err)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	collector.URLBuilt("center")

	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(w.Body.String(), "mapsnap_urls_built_total") {
		t.Errorf("exposition missing counter:\n%s", w.Body.String())
	}
}
