package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sebasr/ticket-notifier/internal/config"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())

	var captured string
	router.GET("/", func(c *gin.Context) {
		captured = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	t.Run("generates an id when none is sent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, captured)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "order-service-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "order-service-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "order-service-123", captured)
	})
}

func TestNewRateLimitMiddleware_Disabled(t *testing.T) {
	mw, err := NewRateLimitMiddleware(config.RateLimitConfig{PerMinute: 0})

	require.NoError(t, err)
	assert.Nil(t, mw)
}

func TestNewRateLimitMiddleware_InvalidRedisURL(t *testing.T) {
	_, err := NewRateLimitMiddleware(config.RateLimitConfig{PerMinute: 10, RedisURL: "ftp://nope"})

	assert.Error(t, err)
}

func TestRateLimitMiddleware_LimitReached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRateLimitMiddlewareWithStore(memory.NewStore(), 2, time.Minute))
	router.POST("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Too many requests", response["error"])
}

func TestNewRateLimitMiddleware_MemoryStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw, err := NewRateLimitMiddleware(config.RateLimitConfig{PerMinute: 1})
	require.NoError(t, err)
	require.NotNil(t, mw)

	router := gin.New()
	router.Use(mw)
	router.POST("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
