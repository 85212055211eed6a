package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/service"
)

// MockPostService implements service.PostService for testing
type MockPostService struct {
	ListPostsFn       func(ctx context.Context) ([]*domain.Post, error)
	ListPostsByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error)
	GetPostFn         func(ctx context.Context, postID uuid.UUID) (*domain.Post, error)
	OwnerExistsFn     func(ctx context.Context, userID uuid.UUID) (bool, error)
	CreatePostFn      func(ctx context.Context, input service.CreatePostInput) (*domain.Post, error)
	UpdatePostFn      func(ctx context.Context, postID uuid.UUID, input service.UpdatePostInput) (*domain.Post, error)
	DeletePostFn      func(ctx context.Context, postID uuid.UUID) error
}

// Statically verify interface compliance
var _ service.PostService = (*MockPostService)(nil)

// ListPosts implements the service.PostService interface
func (m *MockPostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return m.ListPostsFn(ctx)
}

// ListPostsByUser implements the service.PostService interface
func (m *MockPostService) ListPostsByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Post, error) {
	return m.ListPostsByUserFn(ctx, userID)
}

// GetPost implements the service.PostService interface
func (m *MockPostService) GetPost(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	return m.GetPostFn(ctx, postID)
}

// OwnerExists implements the service.PostService interface.
// When OwnerExistsFn is nil, every owner is reported as existing.
func (m *MockPostService) OwnerExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.OwnerExistsFn != nil {
		return m.OwnerExistsFn(ctx, userID)
	}
	return true, nil
}

// CreatePost implements the service.PostService interface
func (m *MockPostService) CreatePost(
	ctx context.Context,
	input service.CreatePostInput,
) (*domain.Post, error) {
	return m.CreatePostFn(ctx, input)
}

// UpdatePost implements the service.PostService interface
func (m *MockPostService) UpdatePost(
	ctx context.Context,
	postID uuid.UUID,
	input service.UpdatePostInput,
) (*domain.Post, error) {
	return m.UpdatePostFn(ctx, postID, input)
}

// DeletePost implements the service.PostService interface
func (m *MockPostService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	return m.DeletePostFn(ctx, postID)
}
