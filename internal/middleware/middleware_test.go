package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatesite/config"
	"estatesite/internal/auth"
	"estatesite/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protected(cfg *config.JWTConfig) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthRequired(cfg), AdminRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	cfg := &config.JWTConfig{AccessSecret: "s", AccessExpiry: time.Hour, Issuer: "estatesite"}
	r := protected(cfg)

	admin, err := auth.GenerateAccessToken(cfg, "u-1", "a@site.test", domain.RoleAdmin)
	require.NoError(t, err)
	w := call(r, "Bearer "+admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer nope").Code)

	viewer, err := auth.GenerateAccessToken(cfg, "u-2", "v@site.test", "VIEWER")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call(r, "Bearer "+viewer).Code)
}

func TestRateLimiter_Window(t *testing.T) {
	l := NewInMemoryRateLimiter(2, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ok, _ := l.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, wait := l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, wait)

	ok, _ = l.Allow("5.6.7.8")
	assert.True(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	l.sweep()
	assert.Empty(t, l.requests)
}

func TestRateLimit_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(NewInMemoryRateLimiter(1, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.GET("/api/properties/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/api/properties/abc", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"path":"/api/properties/:id"`)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}
