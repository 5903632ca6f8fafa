package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is the credential service contract: a one-way, salted,
// cost-parameterized hash and a constant-behavior verify. Verify returns
// false on mismatch, never an error; errors are reserved for malformed
// input (e.g. a digest that is not a bcrypt hash).
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// BcryptHasher implements PasswordHasher with bcrypt. The zero value uses
// bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a BcryptHasher at the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash computes a salted bcrypt digest of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compares plaintext against a stored digest. A wrong password is
// (false, nil); only a malformed digest produces an error.
func (h *BcryptHasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

var _ PasswordHasher = (*BcryptHasher)(nil)
