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
	"github.com/plumehq/plume-api/internal/service/auth"
	"github.com/plumehq/plume-api/internal/store"
)

// CreateUserInput carries the already-validated fields for a new user.
// Password is plaintext here; the service hashes it before anything is
// persisted.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	BirthDate time.Time
	Password  string
}

// UpdateUserInput carries a partial update. Nil pointers mean the field
// is untouched; email and password are not updatable through this path.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	BirthDate *time.Time
}

// UserService provides user-related operations.
type UserService interface {
	// ListUsers retrieves all users in creation order.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// EmailTaken reports whether a user already owns the given email,
	// compared case-insensitively. Handlers run it alongside the field
	// rules so a taken email lands in the same violation list.
	EmailTaken(ctx context.Context, email string) (bool, error)

	// CreateUser hashes the password and persists a new user.
	// A duplicate email surfaces as a *domain.ValidationError when caught
	// by the pre-check, or as store.ErrEmailExists when the database
	// constraint catches a concurrent insert.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// UpdateUser applies a partial update to a user's profile fields and
	// returns the updated user.
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)

	// DeleteUser deletes a user and all of their posts atomically.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	postStore store.PostStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	postStore store.PostStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		postStore: postStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// ListUsers retrieves all users in creation order.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users",
			"error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.logger.Debug("listed users successfully",
		"count", len(users))

	return users, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found",
				"user_id", userID)
		} else {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// EmailTaken reports whether a user already owns the given email.
func (s *UserServiceImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.userStore.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, store.ErrUserNotFound) {
		return false, nil
	}

	s.logger.Error("failed to check email availability",
		"error", err)
	return false, fmt.Errorf("failed to check email availability: %w", err)
}

// CreateUser hashes the password and persists a new user.
// The email pre-check turns the common duplicate case into a validation
// violation; the unique index on lower(email) remains the authority when
// two requests race.
func (s *UserServiceImpl) CreateUser(
	ctx context.Context,
	input CreateUserInput,
) (*domain.User, error) {
	taken, err := s.EmailTaken(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		s.logger.Debug("attempted to create user with existing email",
			"email", input.Email)
		return nil, domain.NewValidationError("email", "is already taken")
	}

	hashedPassword, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(
		input.FirstName,
		input.LastName,
		input.Email,
		input.BirthDate,
		hashedPassword,
	)
	if err != nil {
		s.logger.Error("failed to create user object",
			"error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("email taken by concurrent insert",
				"email", input.Email)
		} else {
			s.logger.Error("failed to save user to database",
				"error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID)

	return user, nil
}

// UpdateUser applies a partial update to a user's profile fields.
// Following the pattern of retrieving the complete user first, then
// changing only the provided fields, then saving the whole object back.
// Uses a transaction to ensure atomicity of the read-modify-write.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	input UpdateUserInput,
) (*domain.User, error) {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				s.logger.Debug("attempted to update non-existent user",
					"user_id", userID)
			} else {
				s.logger.Error("failed to retrieve user for update",
					"error", err,
					"user_id", userID)
			}
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.BirthDate != nil {
			user.BirthDate = *input.BirthDate
		}
		user.UpdatedAt = time.Now().UTC()

		if err := txStore.Update(ctx, user); err != nil {
			s.logger.Error("failed to update user",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to update user: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated successfully in transaction",
		"user_id", userID)

	return updated, nil
}

// DeleteUser deletes a user and all of their posts in a single
// transaction. Posts go first so the foreign key on posts.user_id never
// blocks the user row delete; either both deletes commit or neither does.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPosts := s.postStore.WithTx(tx)
		txUsers := s.userStore.WithTx(tx)

		deleted, err := txPosts.DeleteByUserID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to delete user's posts",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to delete user's posts: %w", err)
		}

		if err := txUsers.Delete(ctx, userID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				s.logger.Debug("attempted to delete non-existent user",
					"user_id", userID)
			} else {
				s.logger.Error("failed to delete user",
					"error", err,
					"user_id", userID)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.logger.Info("user deleted successfully in transaction",
			"user_id", userID,
			"posts_deleted", deleted)

		return nil
	})
}
