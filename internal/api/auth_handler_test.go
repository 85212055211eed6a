package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/mocks"
	"github.com/plumehq/plume-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	userStore := mocks.NewMockUserStore()
	userStore.Users["ada@example.com"] = &domain.User{
		ID:             userID,
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		BirthDate:      time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
		HashedPassword: "hashed-sup3r-secret!",
	}

	tests := []struct {
		name       string
		payload    map[string]interface{}
		compareErr error
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid credentials",
			payload: map[string]interface{}{
				"email":    "ada@example.com",
				"password": "sup3r-secret!",
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": "sup3r-secret!",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"email":    "ada@example.com",
				"password": "wrong-password1!",
			},
			compareErr: auth.ErrPasswordMismatch,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "ada@example.com",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed email",
			payload: map[string]interface{}{
				"email":    "not-an-email",
				"password": "sup3r-secret!",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{Token: "test-token"}
			hasher := &mocks.MockPasswordHasher{CompareErr: tt.compareErr}
			handler := NewAuthHandler(userStore, jwtService, hasher, NewValidator())

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/login", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Login(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var resp LoginResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "test-token", resp.Token)
			}
		})
	}
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.Users["ada@example.com"] = &domain.User{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		HashedPassword: "hashed-pw",
	}

	login := func(t *testing.T, compareErr error, email string) string {
		t.Helper()

		jwtService := &mocks.MockJWTService{Token: "test-token"}
		hasher := &mocks.MockPasswordHasher{CompareErr: compareErr}
		handler := NewAuthHandler(userStore, jwtService, hasher, NewValidator())

		body, err := json.Marshal(map[string]string{
			"email":    email,
			"password": "whatever1!",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/login", bytes.NewBuffer(body))
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		return resp.Message
	}

	unknownEmail := login(t, nil, "nobody@example.com")
	wrongPassword := login(t, auth.ErrPasswordMismatch, "ada@example.com")

	// The response must not reveal which of the two checks failed
	assert.Equal(t, unknownEmail, wrongPassword)
	assert.Equal(t, "Invalid credentials", unknownEmail)
}

func TestLoginHashVerificationFailure(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.Users["ada@example.com"] = &domain.User{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		HashedPassword: "not-a-bcrypt-hash",
	}

	// An unusable stored hash must not masquerade as bad credentials
	hasher := &mocks.MockPasswordHasher{CompareErr: errors.New("failed to compare password: hash too short")}
	handler := NewAuthHandler(userStore, &mocks.MockJWTService{Token: "test-token"}, hasher, NewValidator())

	body, err := json.Marshal(map[string]string{
		"email":    "ada@example.com",
		"password": "whatever1!",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/login", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	handler.Login(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "Invalid credentials")
	assert.NotContains(t, recorder.Body.String(), "hash too short")
}

func TestLoginTokenGenerationFailure(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.Users["ada@example.com"] = &domain.User{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		HashedPassword: "hashed-pw",
	}

	jwtService := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return "", errors.New("signing failed")
		},
	}
	handler := NewAuthHandler(userStore, jwtService, &mocks.MockPasswordHasher{}, NewValidator())

	body, err := json.Marshal(map[string]string{
		"email":    "ada@example.com",
		"password": "whatever1!",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/login", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	handler.Login(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "signing failed")
}
