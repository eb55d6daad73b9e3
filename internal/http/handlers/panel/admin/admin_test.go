package admin_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrivolapov/secure-auth/internal/http/handlers/panel/admin"
	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
	"github.com/mkrivolapov/secure-auth/internal/lib/jwt"
)

func newChain(maker jwt.Maker) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return middlewarectx.JWTMiddleware(maker, logger)(
		middlewarectx.RequireRole(logger, "admin")(
			admin.New(logger)))
}

func TestAdminHandler_ThroughMiddlewareChain(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", time.Hour)
	chain := newChain(maker)

	tests := []struct {
		name           string
		role           string
		wantStatusCode int
	}{
		{name: "admin role allowed", role: "admin", wantStatusCode: http.StatusOK},
		{name: "user role rejected", role: "user", wantStatusCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken("uid-1", tt.role, "user@example.com")
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			chain.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantStatusCode == http.StatusOK {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, "Welcome to the Admin Panel.", got["message"])
			}
		})
	}
}

func TestAdminHandler_NoToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", time.Hour)
	chain := newChain(maker)

	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	rec := httptest.NewRecorder()

	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// Роль зафиксирована в claims в момент выпуска токена: повышение роли в
// хранилище не затрагивает уже выпущенный токен до выпуска нового.
func TestAdminHandler_StaleClaimsAfterRoleElevation(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", time.Hour)
	chain := newChain(maker)

	// токен выпущен, пока роль была "user"
	token, err := maker.GenerateToken("uid-1", "user", "a@x.com")
	require.NoError(t, err)

	// роль в хранилище поднята до admin напрямую, мимо HTTP-поверхности;
	// старый токен по-прежнему несёт роль "user"
	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	// только новый токен с ролью admin открывает доступ
	freshToken, err := maker.GenerateToken("uid-1", "admin", "a@x.com")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+freshToken)
	rec = httptest.NewRecorder()

	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
