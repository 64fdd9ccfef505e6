// Package usecase implements the session gateway: sign-in, bearer token
// authentication and revocation.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// AccountRepository is the slice of account persistence the gateway needs.
type AccountRepository interface {
	GetByID(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error)

	// GetByEmailForUpdate locks the account row until the transaction in ctx ends.
	GetByEmailForUpdate(ctx context.Context, email string) (*accountDomain.Account, error)

	// UpdateLastLogin writes the login time only.
	UpdateLastLogin(ctx context.Context, accountID uuid.UUID, lastLoginAt time.Time) error
}

// TokenRepository defines persistence operations for bearer tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// GetOrCreate stores token unless the account already has one and returns the stored token.
	GetOrCreate(ctx context.Context, token *authDomain.BearerToken) (*authDomain.BearerToken, error)

	// GetByKey returns ErrBearerTokenNotFound if not found.
	GetByKey(ctx context.Context, key string) (*authDomain.BearerToken, error)

	// DeleteByAccount reports whether a token was removed.
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (bool, error)
}

// PasswordComparer verifies a plain password against a stored hash.
type PasswordComparer interface {
	Compare(plainPassword, passwordHash string) bool
}

// SessionUseCase defines the session gateway operations.
type SessionUseCase interface {
	// SignIn checks the credentials, records the login time and returns the account's
	// bearer token. Unknown email, wrong password and inactive account all return
	// ErrInvalidCredentials.
	SignIn(ctx context.Context, input *authDomain.SignInInput) (*authDomain.Session, error)

	// Authenticate resolves a bearer token key to its account. Returns ErrTokenInvalid
	// for an unknown key and ErrUserInactive for an inactive account.
	Authenticate(ctx context.Context, key string) (*accountDomain.Account, error)

	// IssueToken returns the account's token key, creating it when missing. It joins
	// the transaction carried by ctx.
	IssueToken(ctx context.Context, accountID uuid.UUID) (string, error)

	// SignOut revokes the token of an authenticated account.
	SignOut(ctx context.Context, account *accountDomain.Account) error

	// Revoke deletes the account's token and reports whether it had one.
	Revoke(ctx context.Context, accountID uuid.UUID) (bool, error)
}
