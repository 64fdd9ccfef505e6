package service

import (
	"fmt"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// Password hash policies accepted by NewPasswordService.
const (
	PolicyInteractive = "interactive"
	PolicyModerate    = "moderate"
)

// passwordService implements PasswordService with go-pwdhash (Argon2id).
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService for the named policy.
// An empty policy means interactive.
func NewPasswordService(policy string) (PasswordService, error) {
	var (
		hasher *pwdhash.PasswordHasher
		err    error
	)
	switch policy {
	case "", PolicyInteractive:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	case PolicyModerate:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	default:
		return nil, fmt.Errorf("unsupported password hash policy: %s", policy)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordService{hasher: hasher}, nil
}

// Hash hashes a plain text password.
func (s *passwordService) Hash(plainPassword string) (string, error) {
	hash, err := s.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Compare verifies a plain text password against its hash.
func (s *passwordService) Compare(plainPassword, passwordHash string) bool {
	ok, err := s.hasher.Verify([]byte(plainPassword), passwordHash)
	if err != nil {
		return false
	}
	return ok
}
