// Package service provides the credential services behind the account lifecycle:
// password hashing and the stateless activation/reset tokens.
package service

import (
	"github.com/allisson/accounts/internal/account/domain"
)

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	// Hash returns a PHC-formatted hash of the plain password.
	Hash(plainPassword string) (string, error)

	// Compare reports whether the plain password matches the stored hash.
	// Malformed hashes never match.
	Compare(plainPassword, passwordHash string) bool
}

// TokenService issues and validates activation and password reset tokens.
//
// Tokens are not stored. They are recomputed from the account's current state on
// validation, so any change to the state bound by the purpose (password hash for
// resets, email and password hash for activation) invalidates them.
type TokenService interface {
	// Issue returns a token for the account's current state and the current time bucket.
	Issue(account *domain.Account, purpose domain.TokenPurpose) (string, error)

	// Validate reports whether token was issued for this account, purpose and state
	// within the expiry window. The comparison is constant-time.
	Validate(account *domain.Account, purpose domain.TokenPurpose, token string) bool
}
