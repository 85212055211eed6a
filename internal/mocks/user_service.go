package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	ListUsersFn  func(ctx context.Context) ([]*domain.User, error)
	GetUserFn    func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	EmailTakenFn func(ctx context.Context, email string) (bool, error)
	CreateUserFn func(ctx context.Context, input service.CreateUserInput) (*domain.User, error)
	UpdateUserFn func(ctx context.Context, userID uuid.UUID, input service.UpdateUserInput) (*domain.User, error)
	DeleteUserFn func(ctx context.Context, userID uuid.UUID) error
}

// Statically verify interface compliance
var _ service.UserService = (*MockUserService)(nil)

// ListUsers implements the service.UserService interface
func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return m.ListUsersFn(ctx)
}

// GetUser implements the service.UserService interface
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.GetUserFn(ctx, userID)
}

// EmailTaken implements the service.UserService interface.
// When EmailTakenFn is nil, every email is reported as free.
func (m *MockUserService) EmailTaken(ctx context.Context, email string) (bool, error) {
	if m.EmailTakenFn != nil {
		return m.EmailTakenFn(ctx, email)
	}
	return false, nil
}

// CreateUser implements the service.UserService interface
func (m *MockUserService) CreateUser(
	ctx context.Context,
	input service.CreateUserInput,
) (*domain.User, error) {
	return m.CreateUserFn(ctx, input)
}

// UpdateUser implements the service.UserService interface
func (m *MockUserService) UpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	input service.UpdateUserInput,
) (*domain.User, error) {
	return m.UpdateUserFn(ctx, userID, input)
}

// DeleteUser implements the service.UserService interface
func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.DeleteUserFn(ctx, userID)
}
