// Package domain defines the account entity, its lifecycle states and the errors
// the account operations can surface.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a user identity with its credentials.
//
// Email is stored trimmed and lower-cased so uniqueness holds case-insensitively.
// An inactive account cannot sign in.
type Account struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// FullName joins first and last name.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// State derives the lifecycle state from the active flag.
func (a *Account) State() State {
	if a.IsActive {
		return StateActive
	}
	return StatePendingActivation
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SplitFullName splits a full name on its first space. Single-word names get an
// empty last name.
func SplitFullName(fullName string) (first, last string) {
	fullName = strings.TrimSpace(fullName)
	first, last, _ = strings.Cut(fullName, " ")
	return first, strings.TrimSpace(last)
}
