package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches ten rounds of the adaptive hash.
const DefaultBcryptCost = 10

// BcryptHasher hashes and verifies passwords with a per-call salt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or DefaultBcryptCost when
// cost is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches digest. A malformed digest is an
// error; a plain mismatch is not.
func (h *BcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
