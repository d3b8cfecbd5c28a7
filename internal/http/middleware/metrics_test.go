package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tbourn/go-news-api/internal/apperr"
)

func TestMetrics_CountsByRoute_AndUnmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/articles/:article_id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	baseRoute := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/articles/:article_id", "200"))
	baseMiss := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))

	for _, p := range []string{"/api/articles/1", "/api/articles/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s -> %d", p, w.Code)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/typo", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /api/typo -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/articles/:article_id", "200")); got != baseRoute+2 {
		t.Fatalf("route counter = %v; want %v", got, baseRoute+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")); got != baseMiss+1 {
		t.Fatalf("unmatched counter = %v; want %v", got, baseMiss+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}

func TestObserveAPIError(t *testing.T) {
	c := apiErrors.WithLabelValues(string(apperr.ReferentialViolation), "404")
	base := testutil.ToFloat64(c)
	ObserveAPIError(apperr.ReferentialViolation, http.StatusNotFound)
	if got := testutil.ToFloat64(c); got != base+1 {
		t.Fatalf("api_errors_total = %v; want %v", got, base+1)
	}
}
