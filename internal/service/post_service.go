package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/store"
)

// CreatePostInput carries the already-validated fields for a new post.
// Published is a pointer so an omitted flag can default to true.
type CreatePostInput struct {
	Title     string
	Content   string
	Published *bool
	UserID    uuid.UUID
}

// UpdatePostInput carries a partial update. Nil pointers mean the field
// is untouched; the published flag and owner are not updatable.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// PostService provides post-related operations.
type PostService interface {
	// ListPosts retrieves all posts in creation order.
	ListPosts(ctx context.Context) ([]*domain.Post, error)

	// ListPostsByUser retrieves all posts owned by the given user.
	ListPostsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error)

	// GetPost retrieves a post by its ID.
	GetPost(ctx context.Context, postID uuid.UUID) (*domain.Post, error)

	// OwnerExists reports whether the given user ID resolves to an
	// existing user. Handlers run it alongside the field rules so a
	// dangling reference lands in the same violation list.
	OwnerExists(ctx context.Context, userID uuid.UUID) (bool, error)

	// CreatePost persists a new post after confirming the referenced user
	// exists. A dangling user reference surfaces as a
	// *domain.ValidationError on the userId field.
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)

	// UpdatePost applies a partial update to a post's title and content
	// and returns the updated post.
	UpdatePost(ctx context.Context, postID uuid.UUID, input UpdatePostInput) (*domain.Post, error)

	// DeletePost deletes a post by its ID.
	DeletePost(ctx context.Context, postID uuid.UUID) error
}

// PostServiceImpl implements the PostService interface
type PostServiceImpl struct {
	postStore store.PostStore
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postStore store.PostStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) PostService {
	return &PostServiceImpl{
		postStore: postStore,
		userStore: userStore,
		db:        db,
		logger:    logger.With("component", "post_service"),
	}
}

// ListPosts retrieves all posts in creation order.
func (s *PostServiceImpl) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.postStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list posts",
			"error", err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	s.logger.Debug("listed posts successfully",
		"count", len(posts))

	return posts, nil
}

// ListPostsByUser retrieves all posts owned by the given user.
func (s *PostServiceImpl) ListPostsByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Post, error) {
	posts, err := s.postStore.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list posts for user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list posts for user: %w", err)
	}

	return posts, nil
}

// GetPost retrieves a post by its ID.
func (s *PostServiceImpl) GetPost(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			s.logger.Debug("post not found",
				"post_id", postID)
		} else {
			s.logger.Error("failed to retrieve post",
				"error", err,
				"post_id", postID)
		}
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}

	return post, nil
}

// OwnerExists reports whether the given user ID resolves to an existing
// user.
func (s *PostServiceImpl) OwnerExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return false, nil
		}
		s.logger.Error("failed to check post owner",
			"error", err,
			"user_id", userID)
		return false, fmt.Errorf("failed to check post owner: %w", err)
	}
	return true, nil
}

// CreatePost persists a new post. The owner check turns the common
// dangling-reference case into a validation violation; the foreign key
// on posts.user_id remains the authority when the owner is deleted
// concurrently.
func (s *PostServiceImpl) CreatePost(
	ctx context.Context,
	input CreatePostInput,
) (*domain.Post, error) {
	exists, err := s.OwnerExists(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Debug("attempted to create post for non-existent user",
			"user_id", input.UserID)
		return nil, domain.NewValidationError("userId", "must reference an existing user")
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	post, err := domain.NewPost(input.Title, input.Content, published, input.UserID)
	if err != nil {
		s.logger.Error("failed to create post object",
			"error", err,
			"user_id", input.UserID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if err := s.postStore.Create(ctx, post); err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			s.logger.Debug("post owner deleted before insert",
				"user_id", input.UserID)
			return nil, domain.NewValidationError("userId", "must reference an existing user")
		}
		s.logger.Error("failed to save post to database",
			"error", err,
			"user_id", input.UserID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created successfully",
		"post_id", post.ID,
		"user_id", post.UserID)

	return post, nil
}

// UpdatePost applies a partial update to a post's title and content.
// Following the pattern of retrieving the complete post first, then
// changing only the provided fields, then saving the whole object back.
// Uses a transaction to ensure atomicity of the read-modify-write.
func (s *PostServiceImpl) UpdatePost(
	ctx context.Context,
	postID uuid.UUID,
	input UpdatePostInput,
) (*domain.Post, error) {
	var updated *domain.Post

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.postStore.WithTx(tx)

		post, err := txStore.GetByID(ctx, postID)
		if err != nil {
			if errors.Is(err, store.ErrPostNotFound) {
				s.logger.Debug("attempted to update non-existent post",
					"post_id", postID)
			} else {
				s.logger.Error("failed to retrieve post for update",
					"error", err,
					"post_id", postID)
			}
			return fmt.Errorf("failed to retrieve post for update: %w", err)
		}

		if input.Title != nil {
			post.Title = *input.Title
		}
		if input.Content != nil {
			post.Content = *input.Content
		}
		post.UpdatedAt = time.Now().UTC()

		if err := post.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, post); err != nil {
			s.logger.Error("failed to update post",
				"error", err,
				"post_id", postID)
			return fmt.Errorf("failed to update post: %w", err)
		}

		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated successfully in transaction",
		"post_id", postID)

	return updated, nil
}

// DeletePost deletes a post by its ID.
func (s *PostServiceImpl) DeletePost(ctx context.Context, postID uuid.UUID) error {
	err := s.postStore.Delete(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			s.logger.Debug("attempted to delete non-existent post",
				"post_id", postID)
		} else {
			s.logger.Error("failed to delete post",
				"error", err,
				"post_id", postID)
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted successfully",
		"post_id", postID)

	return nil
}
