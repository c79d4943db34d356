package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; production cost comes from config.
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash verifies against original password", func(t *testing.T) {
		t.Parallel()
		hashed, err := hasher.Hash(context.Background(), "secret1")
		require.NoError(t, err)
		require.NotEqual(t, "secret1", hashed)

		assert.NoError(t, hasher.Compare(hashed, "secret1"))
	})

	t.Run("compare fails for wrong password", func(t *testing.T) {
		t.Parallel()
		hashed, err := hasher.Hash(context.Background(), "secret1")
		require.NoError(t, err)

		assert.Error(t, hasher.Compare(hashed, "secret2"))
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		t.Parallel()
		h1, err := hasher.Hash(context.Background(), "secret1")
		require.NoError(t, err)
		h2, err := hasher.Hash(context.Background(), "secret1")
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2)
	})

	t.Run("sub-minimum cost falls back to default", func(t *testing.T) {
		t.Parallel()
		h := NewBcryptHasher(0)
		assert.Equal(t, bcrypt.DefaultCost, h.cost)
	})
}
