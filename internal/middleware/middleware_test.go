package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/ratelimit"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type staticResolver map[string]*domain.User

func (s staticResolver) CurrentUser(ctx context.Context, token string) *domain.User {
	return s[token]
}

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func TestRecoverPanic(t *testing.T) {
	h := RecoverPanic(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestSessionAndRequireAdmin(t *testing.T) {
	resolver := staticResolver{
		"admin-token": {UserID: "chatbot", IsAdmin: true},
		"user-token":  {UserID: "alice"},
	}
	h := SessionMiddleware(resolver)(RequireAdmin(nopLogger{})(statusHandler(http.StatusOK)))

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"unknown token", "bogus", http.StatusUnauthorized},
		{"regular user", "user-token", http.StatusForbidden},
		{"admin", "admin-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.token})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(&ratelimit.Config{
		WindowSize: time.Minute, MaxAttempts: 2, CleanupPeriod: time.Hour, BanDuration: time.Minute,
	})
	defer limiter.Close()

	h := RateLimitMiddleware(limiter, "login", nopLogger{})(statusHandler(http.StatusUnauthorized))

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}
	assert.Equal(t, []int{401, 401, 429}, codes)
}

func TestAuthSuccessMiddlewareResetsCounter(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(&ratelimit.Config{
		WindowSize: time.Minute, MaxAttempts: 2, CleanupPeriod: time.Hour, BanDuration: time.Minute,
	})
	defer limiter.Close()

	status := http.StatusUnauthorized
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(status) })
	h := RateLimitMiddleware(limiter, "login", nopLogger{})(AuthSuccessMiddleware(limiter, "login")(inner))

	do := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "192.0.2.9:1"
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, 401, do())
	status = http.StatusOK
	assert.Equal(t, 200, do())
	status = http.StatusUnauthorized
	assert.Equal(t, 401, do())
	assert.Equal(t, 401, do())
	assert.Equal(t, 429, do())
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(statusHandler(http.StatusOK)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestLoggingMiddlewareCapturesStatus(t *testing.T) {
	var gotStatus interface{}
	logger := &captureLogger{fn: func(kv []interface{}) {
		for i := 0; i+1 < len(kv); i += 2 {
			if kv[i] == "status" {
				gotStatus = kv[i+1]
			}
		}
	}}
	rec := httptest.NewRecorder()
	LoggingMiddleware(logger)(statusHandler(http.StatusTeapot)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, gotStatus)
}

type captureLogger struct {
	nopLogger
	fn func([]interface{})
}

func (c *captureLogger) Info(msg string, kv ...interface{}) { c.fn(kv) }
