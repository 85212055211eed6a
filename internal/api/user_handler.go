package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/plumehq/plume-api/internal/api/shared"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/service"
)

// UserHandler handles user resource API requests.
type UserHandler struct {
	userService service.UserService
	validator   *Validator
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, validator *Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, newUserResponse(user))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /api/users. The response carries the sanitized
// projection only; the password hash and birth date never leave the server.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	verr := h.validator.Struct(req)
	if verr == nil {
		verr = &domain.ValidationError{}
	}

	// The uniqueness rule runs alongside the field rules so a taken email
	// lands in the same response as any other violation. Skipped when the
	// email field itself already failed.
	if !verr.Has("email") {
		taken, err := h.userService.EmailTaken(r.Context(), req.Email)
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		if taken {
			verr.Add("email", "is already taken")
		}
	}

	if verr.HasViolations() {
		HandleServiceError(w, r, verr)
		return
	}

	// The datetime rule has already vetted the format
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		HandleServiceError(w, r, fmt.Errorf("failed to parse birth date: %w", err))
		return
	}

	user, err := h.userService.CreateUser(r.Context(), service.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
		Password:  req.Password,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newUserResponse(user))
}

// Get handles GET /api/users/{userID}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "userID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// Update handles PATCH /api/users/{userID}. Only first name, last name
// and birth date are mutable; email and password sent here are ignored.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "userID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if verr := h.validator.Struct(req); verr != nil {
		HandleServiceError(w, r, verr)
		return
	}

	input := service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(birthDateLayout, *req.BirthDate)
		if err != nil {
			HandleServiceError(w, r, fmt.Errorf("failed to parse birth date: %w", err))
			return
		}
		input.BirthDate = &birthDate
	}

	user, err := h.userService.UpdateUser(r.Context(), userID, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// Delete handles DELETE /api/users/{userID}. The user's posts disappear
// in the same transaction.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "userID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me, returning the authenticated user's sanitized
// profile. RequireAuth guarantees an identity is attached.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
