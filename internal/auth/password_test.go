package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", digest)

	again, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "each hash uses a fresh salt")

	ok, err := h.Verify("secret1", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("secret2", digest)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify("secret1", "not-a-digest")
	assert.Error(t, err)
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)

	digest, err := NewBcryptHasher(0).Hash("secret1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}
