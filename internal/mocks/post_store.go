package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/store"
)

// MockPostStore implements store.PostStore for testing
type MockPostStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, post *domain.Post) error
	ListFn           func(ctx context.Context) ([]*domain.Post, error)
	ListByUserIDFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error)
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	UpdateFn         func(ctx context.Context, post *domain.Post) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	DeleteByUserIDFn func(ctx context.Context, userID uuid.UUID) (int64, error)

	// Data for default implementation, keyed by post ID
	Posts       map[uuid.UUID]*domain.Post
	CreateError error
}

// NewMockPostStore creates a new mock store with initialized defaults
func NewMockPostStore() *MockPostStore {
	return &MockPostStore{
		Posts: make(map[uuid.UUID]*domain.Post),
	}
}

// Create implements the PostStore interface
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Posts[post.ID] = post
	return nil
}

// List implements the PostStore interface
func (m *MockPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	posts := make([]*domain.Post, 0, len(m.Posts))
	for _, post := range m.Posts {
		posts = append(posts, post)
	}
	sortPosts(posts)
	return posts, nil
}

// ListByUserID implements the PostStore interface
func (m *MockPostStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Post, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}

	var posts []*domain.Post
	for _, post := range m.Posts {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}
	sortPosts(posts)
	return posts, nil
}

// GetByID implements the PostStore interface
func (m *MockPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	post, exists := m.Posts[id]
	if !exists {
		return nil, store.ErrPostNotFound
	}

	return post, nil
}

// Update implements the PostStore interface
func (m *MockPostStore) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, post)
	}

	if _, exists := m.Posts[post.ID]; !exists {
		return store.ErrPostNotFound
	}

	m.Posts[post.ID] = post
	return nil
}

// Delete implements the PostStore interface
func (m *MockPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Posts[id]; !exists {
		return store.ErrPostNotFound
	}

	delete(m.Posts, id)
	return nil
}

// DeleteByUserID implements the PostStore interface
func (m *MockPostStore) DeleteByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}

	var deleted int64
	for id, post := range m.Posts {
		if post.UserID == userID {
			delete(m.Posts, id)
			deleted++
		}
	}
	return deleted, nil
}

// WithTx implements the PostStore interface for transaction support
func (m *MockPostStore) WithTx(tx *sql.Tx) store.PostStore {
	// For mock purposes, just return the same mock
	return m
}

func sortPosts(posts []*domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
}
