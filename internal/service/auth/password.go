package auth

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines one-way salted hashing with verification.
// Plaintext passwords never leave this boundary: they are neither logged
// nor returned.
type PasswordHasher interface {
	// Hash derives a salted hash from the plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Compare compares a hashed password with its possible plaintext
	// equivalent. Returns nil on success, ErrPasswordMismatch when the
	// plaintext does not match, or another error on internal failure
	// (a malformed stored hash, context cancellation).
	Compare(ctx context.Context, hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt with a per-call
// random salt. Concurrent hashing is capped by a fixed number of worker
// slots so the CPU-bound bcrypt work cannot starve request handling;
// callers block on slot acquisition but respect context cancellation.
type BcryptHasher struct {
	cost  int
	slots chan struct{}
}

// NewBcryptHasher creates a BcryptHasher with the given cost factor.
// A cost outside bcrypt's supported range falls back to the default.
// maxConcurrent caps parallel hash operations; zero or negative means
// one slot per CPU.
func NewBcryptHasher(cost, maxConcurrent int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}

	return &BcryptHasher{
		cost:  cost,
		slots: make(chan struct{}, maxConcurrent),
	}
}

// Ensure BcryptHasher implements PasswordHasher interface
var _ PasswordHasher = (*BcryptHasher)(nil)

// Hash implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		// The error from bcrypt never contains the plaintext
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Compare(ctx context.Context, hashedPassword, password string) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		// Not a mismatch: the stored hash itself is unusable
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}

func (h *BcryptHasher) acquire(ctx context.Context) error {
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *BcryptHasher) release() {
	<-h.slots
}
