package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/mocks"
	"github.com/plumehq/plume-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityEcho records whether the middleware let the request through and
// which identity, if any, it attached.
type identityEcho struct {
	called bool
	userID uuid.UUID
	hasID  bool
}

func (e *identityEcho) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.called = true
		e.userID, e.hasID = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		authHeader  string
		validateErr error
		wantStatus  int
		wantMessage string
		wantNext    bool
	}{
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header required",
		},
		{
			name:        "malformed header",
			authHeader:  "Token abc",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer bad-token",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired-token",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token expired",
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				Claims:      &auth.Claims{UserID: userID},
				ValidateErr: tt.validateErr,
			}
			m := NewAuthMiddleware(jwtService)

			echo := &identityEcho{}
			req := httptest.NewRequest("GET", "/api/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			m.RequireAuth(echo.handler()).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantNext, echo.called)

			if tt.wantNext {
				assert.True(t, echo.hasID)
				assert.Equal(t, userID, echo.userID)
			} else {
				var resp struct {
					Message string `json:"message"`
				}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, tt.wantMessage, resp.Message)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		authHeader  string
		validateErr error
		wantID      bool
	}{
		{name: "missing header proceeds anonymously"},
		{name: "malformed header proceeds anonymously", authHeader: "Token abc"},
		{
			name:        "invalid token proceeds anonymously",
			authHeader:  "Bearer bad-token",
			validateErr: auth.ErrInvalidToken,
		},
		{
			name:       "valid token attaches identity",
			authHeader: "Bearer good-token",
			wantID:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				Claims:      &auth.Claims{UserID: userID},
				ValidateErr: tt.validateErr,
			}
			m := NewAuthMiddleware(jwtService)

			echo := &identityEcho{}
			req := httptest.NewRequest("GET", "/api/posts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			m.OptionalAuth(echo.handler()).ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.True(t, echo.called, "optional auth must never halt the request")
			assert.Equal(t, tt.wantID, echo.hasID)
			if tt.wantID {
				assert.Equal(t, userID, echo.userID)
			}
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(context.Background())

	_, ok := GetUserID(req)
	assert.False(t, ok)
}
