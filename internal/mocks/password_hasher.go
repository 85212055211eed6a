package mocks

import (
	"context"

	"github.com/plumehq/plume-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing
type MockPasswordHasher struct {
	// HashFn allows test cases to mock the Hash behavior
	HashFn func(ctx context.Context, password string) (string, error)

	// CompareFn allows test cases to mock the Compare behavior
	CompareFn func(ctx context.Context, hashedPassword, password string) error

	// Default values used when functions aren't explicitly defined
	Hashed     string
	HashErr    error
	CompareErr error
}

// Statically verify interface compliance
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(ctx, password)
	}

	if m.Hashed != "" {
		return m.Hashed, m.HashErr
	}
	return "hashed-" + password, m.HashErr
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(ctx context.Context, hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(ctx, hashedPassword, password)
	}

	return m.CompareErr
}
