package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCacheAndInvalidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := cache.New(time.Minute, time.Minute)
	deps := InvalidationMap{
		"/api/machines":     {"/api/machines", "/api/machine-types"},
		"/api/spare-parts":  {"/api/spare-parts"},
		"/api/machine-type": {"/api/machine-types"},
	}

	hits := map[string]int{}
	r := gin.New()
	r.Use(Invalidate(store, deps))
	for _, p := range []string{"/api/machines", "/api/machine-types", "/api/spare-parts"} {
		path := p
		r.GET(path, Cache(store, time.Minute), func(c *gin.Context) {
			hits[path]++
			c.JSON(http.StatusOK, gin.H{"hits": hits[path]})
		})
	}
	r.POST("/api/machines", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/api/spare-parts", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, p := range []string{"/api/machines", "/api/machine-types", "/api/spare-parts"} {
		do(r, http.MethodGet, p)
		w := do(r, http.MethodGet, p)
		assert.Equal(t, "HIT", w.Header().Get("X-Cache"), p)
		assert.Equal(t, 1, hits[p], p)
	}

	// A failed write keeps the cache.
	do(r, http.MethodPost, "/api/spare-parts")
	do(r, http.MethodGet, "/api/spare-parts")
	assert.Equal(t, 1, hits["/api/spare-parts"])

	do(r, http.MethodPost, "/api/machines")
	do(r, http.MethodGet, "/api/machines")
	do(r, http.MethodGet, "/api/machine-types")
	do(r, http.MethodGet, "/api/spare-parts")
	assert.Equal(t, 2, hits["/api/machines"])
	assert.Equal(t, 2, hits["/api/machine-types"])
	assert.Equal(t, 1, hits["/api/spare-parts"])
}

func TestCacheKeysOnPathAndQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := cache.New(time.Minute, time.Minute)
	r := gin.New()
	r.GET("/api/machines", Cache(store, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"plant": c.Query("plant")})
	})

	w := do(r, http.MethodGet, "/api/machines?plant=A")
	assert.Empty(t, w.Header().Get("X-Cache"))
	w = do(r, http.MethodGet, "/api/machines?plant=B")
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"plant":"B"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/machines?plant=A")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"plant":"A"}`, w.Body.String())

	_, found := store.Get("/api/machines?plant=B")
	assert.True(t, found)
	_, found = store.Get("")
	assert.False(t, found)
}

func TestInvalidationMapPrefersLongestPrefix(t *testing.T) {
	m := InvalidationMap{
		"/api/machine":       {"a"},
		"/api/machine-types": {"b"},
	}
	assert.Equal(t, []string{"b"}, m.match("/api/machine-types/MT-1"))
	assert.Equal(t, []string{"a"}, m.match("/api/machines/M-1"))
	assert.Nil(t, m.match("/api/schedule"))
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(rate.Limit(1), 2)
	r := gin.New()
	r.Use(RateLimiter(limiter))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/").Code)
	w := do(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"too many requests"}`, w.Body.String())
}

func TestRateLimiterSweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	limiter.now = func() time.Time { return now }
	limiter.idle = 2 * time.Hour

	limiter.Allow("10.0.0.1")
	now = now.Add(time.Hour)
	limiter.Allow("10.0.0.2")

	assert.Equal(t, 1, limiter.Sweep(10*time.Minute))
	assert.Len(t, limiter.visitors, 1)
}

func TestRateLimiterSweepsOnAllow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")
	require.Len(t, limiter.visitors, 2)

	now = now.Add(DefaultIdle + time.Second)
	limiter.Allow("10.0.0.3")
	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "10.0.0.3")
}

func TestRequestIDAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.NewNop()), CORS())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := do(r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodOptions, "/").Code)
}
