// Package usecase implements the account lifecycle: sign-up, activation, password
// reset and the authenticated profile operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
)

// AccountRepository defines persistence operations for accounts.
// Implementations must support transaction-aware operations via context propagation.
type AccountRepository interface {
	// Create stores a new account. Returns ErrAccountAlreadyExists on a duplicate email.
	Create(ctx context.Context, account *domain.Account) error

	// UpdateDetails writes email and name only. Returns ErrAccountAlreadyExists on a
	// duplicate email.
	UpdateDetails(ctx context.Context, account *domain.Account) error

	// SetActive sets the active flag.
	SetActive(ctx context.Context, accountID uuid.UUID, updatedAt time.Time) error

	// SetPasswordHash replaces the password hash only.
	SetPasswordHash(ctx context.Context, accountID uuid.UUID, passwordHash string, updatedAt time.Time) error

	// GetByID returns ErrAccountNotFound if not found.
	GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)

	// GetByIDForUpdate is GetByID holding a row lock until the transaction in ctx ends.
	GetByIDForUpdate(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)

	// GetByEmail matches the normalized email. Returns ErrAccountNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// GetByEmailForUpdate is GetByEmail holding a row lock until the transaction in ctx ends.
	GetByEmailForUpdate(ctx context.Context, email string) (*domain.Account, error)

	// ExistsByEmail reports whether an account other than excludeID uses the email.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// UpdateLastLogin writes the login time only. Sign-in uses it.
	UpdateLastLogin(ctx context.Context, accountID uuid.UUID, lastLoginAt time.Time) error
}

// EventRepository defines persistence operations for the account event log.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]*domain.Event, error)
	DeleteOlderThan(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// TokenIssuer returns the account's bearer token key, creating it when missing.
// It runs on the transaction carried by ctx.
type TokenIssuer interface {
	IssueToken(ctx context.Context, accountID uuid.UUID) (string, error)
}

// AccountUseCase defines the account lifecycle operations.
//
// Coded failures (USER_INVALID, TOKEN_INVALID, USER_ACTIVE, SIGN_UP_DISABLED) are
// returned as *errors.CodedError and field failures as *errors.ValidationError.
type AccountUseCase interface {
	// SignUp validates the form, creates the account with its bearer token in one
	// transaction and sends the activation notice when the account starts inactive.
	SignUp(ctx context.Context, input *domain.SignUpInput) (*domain.SignUpOutput, error)

	// Create applies the sign-up rules without the sign-up switch or any notice.
	// It backs the create-account command.
	Create(ctx context.Context, input *domain.SignUpInput, active bool) (*domain.SignUpOutput, error)

	// Activate sets the active flag once the activation token checks out. Using a
	// valid link again on an active account succeeds without writing.
	Activate(ctx context.Context, accountID uuid.UUID, token string) error

	// ResendActivation issues and sends a new activation link to an inactive account.
	ResendActivation(ctx context.Context, accountID uuid.UUID) error

	// RequestPasswordReset sends a reset link to an active account. An unknown email
	// succeeds silently.
	RequestPasswordReset(ctx context.Context, email string) error

	// ValidateResetToken checks a reset link without side effects.
	ValidateResetToken(ctx context.Context, accountID uuid.UUID, token string) error

	// SetPassword consumes a reset link. The new hash invalidates every outstanding
	// reset token of the account.
	SetPassword(ctx context.Context, accountID uuid.UUID, token string, input *domain.SetPasswordInput) error

	// ChangePassword replaces the password of an authenticated account.
	ChangePassword(ctx context.Context, account *domain.Account, input *domain.ChangePasswordInput) error

	// UpdateDetails changes name and email of an authenticated account.
	UpdateDetails(ctx context.Context, account *domain.Account, input *domain.UpdateDetailsInput) (*domain.Account, error)

	// Get returns ErrAccountNotFound for an unknown id.
	Get(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
}

// EventUseCase exposes the account event log.
type EventUseCase interface {
	// List returns the account's events newest first.
	List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]*domain.Event, error)

	// DeleteOlderThan removes events older than days. With dryRun it only counts them.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
