package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/api/shared"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/service"
)

// PostHandler handles post resource API requests.
type PostHandler struct {
	postService service.PostService
	validator   *Validator
}

// NewPostHandler creates a new PostHandler with the given dependencies.
func NewPostHandler(postService service.PostService, validator *Validator) *PostHandler {
	return &PostHandler{
		postService: postService,
		validator:   validator,
	}
}

// List handles GET /api/posts. An optional userId query parameter narrows
// the listing to one owner's posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		posts []*domain.Post
		err   error
	)

	if raw := r.URL.Query().Get("userId"); raw != "" {
		ownerID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			shared.RespondWithViolations(w, r, http.StatusBadRequest, []domain.Violation{
				{Field: "userId", Message: "must be a valid UUID"},
			})
			return
		}
		posts, err = h.postService.ListPostsByUser(r.Context(), ownerID)
	} else {
		posts, err = h.postService.ListPosts(r.Context())
	}
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	resp := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, newPostResponse(post, false))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /api/posts. published defaults to true when the
// payload omits it.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	verr := h.validator.Struct(req)
	if verr == nil {
		verr = &domain.ValidationError{}
	}

	// The owner-existence rule runs alongside the field rules so a
	// dangling reference lands in the same response as any other
	// violation. Skipped when the userId field itself already failed.
	var ownerID uuid.UUID
	if !verr.Has("userId") {
		var err error
		ownerID, err = uuid.Parse(req.UserID)
		if err != nil {
			verr.Add("userId", "must be a valid UUID")
		} else {
			exists, err := h.postService.OwnerExists(r.Context(), ownerID)
			if err != nil {
				HandleServiceError(w, r, err)
				return
			}
			if !exists {
				verr.Add("userId", "must reference an existing user")
			}
		}
	}

	if verr.HasViolations() {
		HandleServiceError(w, r, verr)
		return
	}

	post, err := h.postService.CreatePost(r.Context(), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		UserID:    ownerID,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newPostResponse(post, false))
}

// Get handles GET /api/posts/{postID}. The response embeds the owning
// user's public identity.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathUUID(r, "postID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	post, err := h.postService.GetPost(r.Context(), postID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newPostResponse(post, true))
}

// Update handles PATCH /api/posts/{postID}. Only title and content are
// mutable; the published flag keeps its pre-update value.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathUUID(r, "postID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if verr := h.validator.Struct(req); verr != nil {
		HandleServiceError(w, r, verr)
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), postID, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newPostResponse(post, false))
}

// Delete handles DELETE /api/posts/{postID}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathUUID(r, "postID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.postService.DeletePost(r.Context(), postID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
