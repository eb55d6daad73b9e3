package passwordupdate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkrivolapov/secure-auth/internal/http/middlewarectx"
	userservice "github.com/mkrivolapov/secure-auth/internal/services/user"
)

type PasswordChangerMock struct {
	mock.Mock
}

func (m *PasswordChangerMock) ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	args := m.Called(ctx, uid, currentPassword, newPassword)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func authedRequest(body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/user/password", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middlewarectx.UID, "uid-1")
	return req.WithContext(ctx)
}

func TestPasswordUpdateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "successful change",
			body:           `{"currentPassword":"old-password","newPassword":"new-password"}`,
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantMessage:    "Password updated successfully.",
		},
		{
			name:           "missing current password",
			body:           `{"newPassword":"new-password"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Current and new password are required.",
		},
		{
			name:           "missing new password",
			body:           `{"currentPassword":"old-password"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Current and new password are required.",
		},
		{
			name:           "empty body",
			body:           "",
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Current and new password are required.",
		},
		{
			name:           "wrong current password",
			body:           `{"currentPassword":"wrong","newPassword":"new-password"}`,
			mockErr:        userservice.ErrWrongPassword,
			mockCalled:     true,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Incorrect current password.",
		},
		{
			name:           "user vanished",
			body:           `{"currentPassword":"old-password","newPassword":"new-password"}`,
			mockErr:        userservice.ErrUserNotFound,
			mockCalled:     true,
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "User not found.",
		},
		{
			name:           "storage error",
			body:           `{"currentPassword":"old-password","newPassword":"new-password"}`,
			mockErr:        errors.New("connection refused"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "Server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changerMock := new(PasswordChangerMock)
			handler := New(newNoopLogger(), changerMock)

			if tt.mockCalled {
				changerMock.On("ChangePassword", mock.Anything, "uid-1", mock.Anything, mock.Anything).
					Return(tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest([]byte(tt.body)))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantMessage, got["message"])

			changerMock.AssertExpectations(t)
		})
	}
}

func TestPasswordUpdateHandler_MissingIdentity(t *testing.T) {
	handler := New(newNoopLogger(), new(PasswordChangerMock))

	req := httptest.NewRequest(http.MethodPut, "/api/user/password",
		bytes.NewReader([]byte(`{"currentPassword":"a","newPassword":"b"}`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
