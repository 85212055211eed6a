package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
)

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post. Returns ErrInvalidReference if the post's
	// UserID does not resolve to an existing user (foreign key violation).
	Create(ctx context.Context, post *domain.Post) error

	// List retrieves all posts in creation order.
	List(ctx context.Context) ([]*domain.Post, error)

	// ListByUserID retrieves all posts owned by the given user.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error)

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// Update persists changes to an existing post's title and content.
	// The published flag is not alterable through this path.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post by ID.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID removes every post owned by the given user and
	// reports how many rows were deleted. Used by the cascading user
	// delete inside its transaction.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// WithTx returns a PostStore bound to the provided transaction.
	WithTx(tx *sql.Tx) PostStore
}
