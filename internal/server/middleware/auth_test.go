package middleware

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

	"github.com/iudanet/possync/internal/server/token"
	"github.com/iudanet/possync/pkg/api"
)

var testSecret = []byte("test-secret-key-for-status-api")

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(t *testing.T, expectedSubject string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if expectedSubject != "" {
			subject, ok := r.Context().Value(SubjectKey).(string)
			assert.True(t, ok)
			assert.Equal(t, expectedSubject, subject)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	signed, err := token.Generate(testSecret, "operator", time.Minute)
	require.NoError(t, err)

	handler := AuthMiddleware(setupTestLogger(), testSecret)(okHandler(t, "operator"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	handler := AuthMiddleware(setupTestLogger(), nil)(okHandler(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired, err := token.Generate(testSecret, "operator", -time.Minute)
	require.NoError(t, err)
	wrongSecret, err := token.Generate([]byte("other-secret"), "operator", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing header", header: "", message: "missing token"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", message: "invalid token format"},
		{name: "no space", header: "Bearer", message: "invalid token format"},
		{name: "garbage token", header: "Bearer abc.def.ghi", message: "invalid token"},
		{name: "expired token", header: "Bearer " + expired, message: "invalid token"},
		{name: "wrong secret", header: "Bearer " + wrongSecret, message: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(setupTestLogger(), testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not be called")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestAuthMiddleware_BearerCaseInsensitive(t *testing.T) {
	signed, err := token.Generate(testSecret, "operator", time.Minute)
	require.NoError(t, err)

	handler := AuthMiddleware(setupTestLogger(), testSecret)(okHandler(t, "operator"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cursors", nil)
	req.Header.Set("Authorization", "bearer "+signed)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
