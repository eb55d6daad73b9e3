package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
	"github.com/mkrivolapov/secure-auth/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", time.Hour)
	logger := newNoopLogger()

	validToken, err := maker.GenerateToken("uid-1", "user", "user@example.com")
	require.NoError(t, err)

	expiredMaker := jwt.NewJWTMaker("test_secret_key_1234567890", -time.Minute)
	expiredToken, err := expiredMaker.GenerateToken("uid-1", "user", "user@example.com")
	require.NoError(t, err)

	handlerCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		assert.Equal(t, "uid-1", r.Context().Value(middlewarectx.UID))
		assert.Equal(t, "user", r.Context().Value(middlewarectx.Role))
		assert.Equal(t, "user@example.com", r.Context().Value(middlewarectx.Email))
		w.WriteHeader(http.StatusOK)
	})

	mw := middlewarectx.JWTMiddleware(maker, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer garbage",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expiredToken,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid bearer token",
			authHeader:     "Bearer " + validToken,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "valid bare token without bearer prefix",
			authHeader:     validToken,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestRequireRole(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", time.Hour)
	logger := newNoopLogger()

	tests := []struct {
		name           string
		role           string
		allowed        []string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "role allowed",
			role:           "admin",
			allowed:        []string{"admin"},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "role not allowed",
			role:           "user",
			allowed:        []string{"admin"},
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "one of several allowed roles",
			role:           "user",
			allowed:        []string{"admin", "user"},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			token, err := maker.GenerateToken("uid-1", tt.role, "user@example.com")
			require.NoError(t, err)

			// цепочка как в приложении: сначала JWT, затем проверка роли
			chain := middlewarectx.JWTMiddleware(maker, logger)(
				middlewarectx.RequireRole(logger, tt.allowed...)(nextHandler))

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			chain.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestRequireRole_WithoutAuthContext(t *testing.T) {
	logger := newNoopLogger()

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := middlewarectx.RequireRole(logger, "admin")(nextHandler)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
