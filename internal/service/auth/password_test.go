package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	// Minimum cost keeps the test fast; production cost comes from config
	hasher := NewBcryptHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	hashed, err := hasher.Hash(ctx, "sup3r-secret!")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotContains(t, hashed, "sup3r-secret!")

	assert.NoError(t, hasher.Compare(ctx, hashed, "sup3r-secret!"))
	assert.ErrorIs(t,
		hasher.Compare(ctx, hashed, "wrong-password"),
		ErrPasswordMismatch)
}

func TestBcryptHasherMalformedHashIsNotAMismatch(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost, 2)

	err := hasher.Compare(context.Background(), "not-a-bcrypt-hash", "sup3r-secret!")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestBcryptHasherSaltsEveryHash(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "sup3r-secret!")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "sup3r-secret!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasherDefaults(t *testing.T) {
	t.Parallel()

	// Out-of-range cost falls back to the bcrypt default
	hasher := NewBcryptHasher(99, 0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
	assert.Greater(t, cap(hasher.slots), 0)
}

func TestBcryptHasherRespectsContext(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost, 1)

	// Occupy the only slot so acquisition must block
	hasher.slots <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hasher.Hash(ctx, "sup3r-secret!")
	assert.ErrorIs(t, err, context.Canceled)

	err = hasher.Compare(ctx, "some-hash", "sup3r-secret!")
	assert.ErrorIs(t, err, context.Canceled)
}
