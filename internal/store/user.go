package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must carry an
	// already-hashed password. Returns ErrEmailExists if the email is
	// already taken (case-insensitive).
	Create(ctx context.Context, user *domain.User) error

	// List retrieves all users in creation order.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address, compared
	// case-insensitively. Returns ErrUserNotFound if no user matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists changes to an existing user's mutable fields
	// (first name, last name, birth date). Email and password are not
	// touched by this path. Returns ErrUserNotFound if the user does
	// not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user row by ID. It does not cascade by itself;
	// the user service deletes the user's posts in the same transaction.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the provided transaction so
	// multiple operations can execute atomically. The transaction is
	// created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
