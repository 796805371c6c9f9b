package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nekogravitycat/creator-booking-backend/internal/auth"
)

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	t.Run("Generated", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		w := serve(r, req)
		id := w.Header().Get(requestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("Propagated", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc")
		w := serve(r, req)
		assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		serve(r, req)
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/ok", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["requestID"])
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(userID string) *gin.Engine {
		limiter := NewRateLimiter(1, 2)
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			if userID != "" {
				auth.SetUserID(c, userID)
			}
			c.Next()
		}, limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("Burst then reject", func(t *testing.T) {
		r := newRouter("")
		codes := make([]int, 3)
		for i := range codes {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			codes[i] = serve(r, req).Code
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Keyed per user", func(t *testing.T) {
		limiter := NewRateLimiter(1, 1)
		r := gin.New()
		r.GET("/:user", func(c *gin.Context) {
			auth.SetUserID(c, c.Param("user"))
			c.Next()
		}, limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

		for _, path := range []string{"/alice", "/bob"} {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			assert.Equal(t, http.StatusOK, serve(r, req).Code, path)
		}
		req, _ := http.NewRequest(http.MethodGet, "/alice", nil)
		assert.Equal(t, http.StatusTooManyRequests, serve(r, req).Code)
	})
}

func TestRateLimiterSweep(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clock := time.Date(2030, 5, 20, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 1)
	limiter.now = func() time.Time { return clock }

	r := gin.New()
	r.GET("/:user", func(c *gin.Context) {
		auth.SetUserID(c, c.Param("user"))
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path string) int {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		return serve(r, req).Code
	}

	require.Equal(t, http.StatusOK, get("/alice"))
	clock = clock.Add(5 * time.Minute)
	require.Equal(t, http.StatusOK, get("/bob"))

	clock = clock.Add(6 * time.Minute)
	assert.Equal(t, 1, limiter.Sweep(10*time.Minute))
	assert.Len(t, limiter.limiters, 1)
	assert.Contains(t, limiter.limiters, "user:bob")

	// bob's bucket survived the sweep and is still empty
	assert.Equal(t, http.StatusTooManyRequests, get("/bob"))

	clock = clock.Add(time.Hour)
	assert.Equal(t, 1, limiter.Sweep(10*time.Minute))
	assert.Empty(t, limiter.limiters)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example, ,https://b.example "))
	assert.Nil(t, splitOrigins(""))
}
