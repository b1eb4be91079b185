package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "moving_quote_backend/internal/http"
	"moving_quote_backend/internal/preoffer"
	"moving_quote_backend/internal/preoffer/repository"
	"moving_quote_backend/internal/rate"
	"moving_quote_backend/platform/config"
	"moving_quote_backend/platform/httpkit"
	"moving_quote_backend/platform/logger"
	"moving_quote_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		CORSOrigins:         []string{"http://localhost:5173"},
		SubmitRatePerMinute: 1,
		SubmitRateBurst:     1,
	}
	log := logger.Discard()
	module := preoffer.NewModule(repository.NewMemoryRepository(time.Hour), rate.ClientFunc(nil), validator.New(), log)

	return New(&apphttp.App{
		Config:  cfg,
		Logger:  log,
		Modules: []apphttp.Module{module},
	})
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/api/health", "/api/ready"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get(httpkit.HeaderRequestID))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(httpkit.HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(httpkit.HeaderRequestID))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/pre-offers", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubmitIsRateLimited(t *testing.T) {
	engine := newTestEngine(t)
	path := "/api/v1/pre-offers/" + uuid.NewString() + "/quote"

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
