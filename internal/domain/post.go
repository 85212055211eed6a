package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Title and content length bounds for posts.
const (
	PostTitleMinLen   = 3
	PostTitleMaxLen   = 100
	PostContentMinLen = 10
)

// Common validation errors for Post
var (
	ErrEmptyPostID     = errors.New("post ID cannot be empty")
	ErrEmptyPostUserID = errors.New("post user ID cannot be empty")
	ErrInvalidTitle    = errors.New("post title must be between 3 and 100 characters")
	ErrInvalidContent  = errors.New("post content must be at least 10 characters")
)

// Post represents an article owned by a single user. Every post's UserID
// must resolve to an existing user; deleting a user deletes its posts in
// the same transaction so no orphan ever becomes visible.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost creates a new Post with a generated ID and server-managed
// timestamps. Returns an error if validation fails.
func NewPost(title, content string, published bool, userID uuid.UUID) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Published: published,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Returns an error if any field fails validation.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyPostUserID
	}
	// Length bounds count characters, not bytes, so multibyte input is
	// measured the same way the request validator measures it
	if n := utf8.RuneCountInString(p.Title); n < PostTitleMinLen || n > PostTitleMaxLen {
		return ErrInvalidTitle
	}
	if utf8.RuneCountInString(p.Content) < PostContentMinLen {
		return ErrInvalidContent
	}
	return nil
}
