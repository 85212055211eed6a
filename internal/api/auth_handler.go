package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/plumehq/plume-api/internal/api/shared"
	"github.com/plumehq/plume-api/internal/service/auth"
	"github.com/plumehq/plume-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	validator  *Validator
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	validator *Validator,
) *AuthHandler {
	return &AuthHandler{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		validator:  validator,
	}
}

// Login handles POST /api/login. Unknown email and wrong password produce
// the same generic 401 so the response never reveals which check failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if verr := h.validator.Struct(req); verr != nil {
		HandleServiceError(w, r, verr)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleServiceError(w, r, auth.ErrInvalidCredentials)
			return
		}
		HandleServiceError(w, r, fmt.Errorf("failed to authenticate user: %w", err))
		return
	}

	if err := h.hasher.Compare(r.Context(), user.HashedPassword, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			HandleServiceError(w, r, auth.ErrInvalidCredentials)
			return
		}
		// A malformed stored hash or a cancelled context is an internal
		// failure, not a credential problem
		HandleServiceError(w, r, fmt.Errorf("failed to verify password: %w", err))
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		HandleServiceError(w, r, fmt.Errorf("failed to generate authentication token: %w", err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}
