package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
)

type validatorFunc func(ctx context.Context, token string) (*entity.User, error)

func (f validatorFunc) Execute(ctx context.Context, token string) (*entity.User, error) {
	return f(ctx, token)
}

func acceptOnly(valid string) SessionValidator {
	return validatorFunc(func(_ context.Context, token string) (*entity.User, error) {
		if token == valid {
			return &entity.User{ID: "u1", Name: "Ann", Email: "ann@x.io"}, nil
		}
		return nil, domainerr.ErrInvalidUser
	})
}

func newAuthRouter(v SessionValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), Auth(v))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey)+"|"+c.GetString(CtxUserEmailKey))
	})
	return r
}

func TestAuth(t *testing.T) {
	r := newAuthRouter(acceptOnly("good"))

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"lowercase scheme", func(req *http.Request) { req.Header.Set("Authorization", "bearer good") }, http.StatusOK},
		{"cookie fallback", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: "good"})
		}, http.StatusOK},
		{"header wins over cookie", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer stale")
			req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: "good"})
		}, http.StatusUnauthorized},
		{"revoked token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer old") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				require.Equal(t, "u1|ann@x.io", w.Body.String())
			}
		})
	}
}

func TestAuthBackendFailureIsInternalError(t *testing.T) {
	r := newAuthRouter(validatorFunc(func(context.Context, string) (*entity.User, error) {
		return nil, domainerr.ErrUnexpected
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "internal error")
	require.NotContains(t, w.Body.String(), "invalid session")
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, BearerToken(req))
	req.Header.Set("Authorization", "Basic abc")
	require.Empty(t, BearerToken(req))
	req.Header.Set("Authorization", "Bearer  abc ")
	require.Equal(t, "abc", BearerToken(req))
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, w.Body.String())
	require.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	const incoming = "0f8fad5b-d9cb-469f-a165-70867728950e"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, incoming, w.Body.String())
}

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "203.0.113.7", w.Body.String())

	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "198.51.100.2", w.Body.String())
}

func TestRateLimitWithoutRedisIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(nil, 1, 0, KeyByIPAndPath(), nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
}
