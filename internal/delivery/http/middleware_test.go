package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"exact match", "https://app.example.com", []string{"https://app.example.com"}, true},
		{"no match", "https://evil.example.com", []string{"https://app.example.com"}, false},
		{"wildcard all", "https://anything.example.com", []string{"*"}, true},
		{"wildcard suffix", "https://sub.example.com", []string{"https://sub.example.*"}, true},
		{"empty origin", "", []string{"https://app.example.com"}, false},
		{"empty allowed list", "https://app.example.com", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAllowedOrigin(tt.origin, tt.allowed))
		})
	}
}

func TestCORSMiddleware_PreflightRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware([]string{"*"}))
	router.POST("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("OPTIONS", "/test", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(APIKeyAuth("secret-key"))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("accepts matching key", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-API-Key", "secret-key")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects wrong key", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-API-Key", "wrong-key")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects missing key", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestLimiter_Allow(t *testing.T) {
	limiter := NewRequestLimiter(3, time.Minute)
	now := time.Now()

	assert.True(t, limiter.allow("key", now))
	assert.True(t, limiter.allow("key", now.Add(time.Second)))
	assert.True(t, limiter.allow("key", now.Add(2*time.Second)))
	assert.False(t, limiter.allow("key", now.Add(3*time.Second)), "fourth request in window is rejected")

	// Other keys have independent windows.
	assert.True(t, limiter.allow("other-key", now.Add(3*time.Second)))

	// Once the oldest request leaves the window, a slot frees up.
	assert.True(t, limiter.allow("key", now.Add(61*time.Second)))
}

func TestRequestLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRequestLimiter(2, time.Minute)

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() int {
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-API-Key", "key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
