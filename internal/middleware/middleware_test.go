package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"toski_backend/internal/common"
	"toski_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	r := gin.New()
	r.Use(ZapLogger(logger, &config.Config{GinMode: "test"}))
	r.Use(Recovery(logger))
	r.Use(ErrorHandler(logger))
	return r
}

func TestRequireAccessToken(t *testing.T) {
	r := newTestEngine()
	r.GET("/guarded", RequireAccessToken(zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, common.GetAccessToken(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_ACCESS_TOKEN")

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set(common.AccessTokenHeader, "Bearer abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := newTestEngine()
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/unwritten", func(c *gin.Context) { _ = c.Error(common.ErrUserNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unwritten", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "USER_NOT_FOUND")
}

func TestZapLoggerSetsRequestID(t *testing.T) {
	r := newTestEngine()
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NotEmpty(t, w.Header().Get(common.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(common.RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(common.RequestIDHeader))
}
