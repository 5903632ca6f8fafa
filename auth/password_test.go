package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", digest)

	ok, err := h.Verify("correct horse battery staple", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasherWrongPassword(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := h.Hash("the real password")
	require.NoError(t, err)

	ok, err := h.Verify("a guess", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherMalformedDigest(t *testing.T) {
	h := NewBcryptHasher()

	ok, err := h.Verify("anything", "not-a-bcrypt-digest")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherDistinctDigests(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	first, err := h.Hash("same input")
	require.NoError(t, err)
	second, err := h.Hash("same input")
	require.NoError(t, err)

	// Salting makes every digest unique even for identical input.
	assert.NotEqual(t, first, second)
}
