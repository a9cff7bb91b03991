package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStructuredLoggingMiddleware_PropagatesLoggerAndRequestID(t *testing.T) {
	base := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	router := gin.New()
	router.Use(StructuredLoggingMiddleware(base))

	var ctxLogger, ginLogger *slog.Logger
	var requestID string
	router.GET("/ping", func(c *gin.Context) {
		ctxLogger = GetLoggerFromCtx(c.Request.Context())
		ginLogger = GetLoggerFromContext(c)
		requestID, _ = GetRequestIDFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", requestID)
	require.NotNil(t, ctxLogger)
	assert.Same(t, ginLogger, ctxLogger)
	assert.NotSame(t, slog.Default(), ctxLogger)
}

func TestGetLoggerFromCtx_DefaultsOutsideRequest(t *testing.T) {
	assert.Same(t, slog.Default(), GetLoggerFromCtx(context.Background()))
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	limiterInstance, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RateLimit(limiterInstance))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	_, err := NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestRequestMetricsMiddleware(t *testing.T) {
	m := metrics.NewHTTPMetrics(prometheus.NewRegistry())
	router := gin.New()
	router.Use(RequestMetricsMiddleware(m))
	router.GET("/api/v1/purchases/:purchaseID", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/purchases/a", "/api/v1/purchases/b", "/health", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/purchases/:purchaseID", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestsTotal))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
