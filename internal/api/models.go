package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
)

// Common request/response structures.
//
// Validation tags declare the per-field rules; rule evaluation order
// follows field declaration order, so violation ordering is stable.

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest defines the payload for user signup.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02,minage=16"`
	Password  string `json:"password"  validate:"required,password"`
}

// UpdateUserRequest defines the partial-update payload for users.
// Only first name, last name and birth date are mutable post-creation;
// email and password fields sent on this path are ignored.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02,minage=16"`
}

// UserResponse is the sanitized external view of a user. The password
// hash, timestamps and birth date are never serialized.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// newUserResponse builds the sanitized representation of a user.
func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// CreatePostRequest defines the payload for post creation.
// published defaults to true when omitted.
type CreatePostRequest struct {
	Title     string `json:"title"   validate:"required,min=3,max=100"`
	Content   string `json:"content" validate:"required,min=10"`
	Published *bool  `json:"published"`
	UserID    string `json:"userId"  validate:"required,uuid"`
}

// UpdatePostRequest defines the partial-update payload for posts.
// Only title and content are mutable; published is not alterable here.
type UpdatePostRequest struct {
	Title   *string `json:"title"   validate:"omitempty,min=3,max=100"`
	Content *string `json:"content" validate:"omitempty,min=10"`
}

// PostOwner is the owning user's public identity embedded in a
// single-post response.
type PostOwner struct {
	ID uuid.UUID `json:"id"`
}

// PostResponse is the external view of a post. The User field carries the
// owner's identity on single-resource fetches and is omitted elsewhere.
type PostResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Published bool       `json:"published"`
	UserID    uuid.UUID  `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      *PostOwner `json:"User,omitempty"`
}

// newPostResponse builds the external view of a post. withOwner embeds
// the owning user's identity.
func newPostResponse(post *domain.Post, withOwner bool) PostResponse {
	resp := PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if withOwner {
		resp.User = &PostOwner{ID: post.UserID}
	}
	return resp
}
