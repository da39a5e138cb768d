package service

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// PasswordHasher hashes and verifies staff passwords with Argon2id.
type PasswordHasher struct {
	hasher    *pwdhash.PasswordHasher
	dummyHash string
}

// NewPasswordHasher creates a PasswordHasher using the Moderate policy. A hash of
// a random value is computed once so that logins for unknown emails cost the
// same as logins for known ones.
func NewPasswordHasher() (*PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	random := make([]byte, 16)
	if _, err := rand.Read(random); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate dummy password")
	}
	dummyHash, err := hasher.Hash([]byte(hex.EncodeToString(random)))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash dummy password")
	}

	return &PasswordHasher{hasher: hasher, dummyHash: dummyHash}, nil
}

// Hash returns the PHC-formatted hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := h.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (h *PasswordHasher) Verify(password, hash string) bool {
	ok, err := h.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}

// DummyHash returns a hash no password is known to match.
func (h *PasswordHasher) DummyHash() string {
	return h.dummyHash
}
