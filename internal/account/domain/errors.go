package domain

import (
	apperrors "github.com/allisson/accounts/internal/errors"
)

// Response codes returned by successful lifecycle operations.
const (
	CodeActivated       = "ACTIVATED"
	CodeActivationSent  = "ACTIVATION_SENT"
	CodePasswordReset   = "PASSWORD_RESET"
	CodeTokenValid      = "TOKEN_VALID"
	CodePasswordSet     = "PASSWORD_SET"
	CodePasswordChanged = "PASSWORD_CHANGED"
)

// Field level codes used by the password forms.
const (
	CodePasswordMismatch  = "PASSWORD_MISMATCH"
	CodePasswordTooShort  = "PASSWORD_TOO_SHORT"
	CodePasswordIncorrect = "PASSWORD_INCORRECT"
)

// Validation messages.
const (
	MsgFullNameTooShort = "The full name must be at least 3 characters long."
	MsgFullNameTooLong  = "The full name must be 50 characters long maximum."
	MsgFullNameInvalid  = "The full name field only accepts letters and hyphen."
	MsgEmailInvalid     = "This email address is not valid."
	MsgEmailTaken       = "This email is already used."
	MsgPasswordTooShort = "Password must be at least 6 characters long."
	MsgPasswordTooLong  = "Password must be 50 characters long maximum."
	MsgAccountInactive  = "Your account is not active."
)

// Field limits.
const (
	FullNameMinLength = 3
	FullNameMaxLength = 50
	PasswordMinLength = 6
	PasswordMaxLength = 50
)

// Domain-specific errors for account operations.
var (
	// ErrAccountNotFound is returned by repositories when no account matches.
	ErrAccountNotFound = apperrors.Wrap(apperrors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists is returned by repositories on a duplicate email.
	ErrAccountAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "account already exists")

	// ErrUserInvalid means the account id in a link does not exist.
	ErrUserInvalid = apperrors.NewCoded(apperrors.ErrNotFound, "USER_INVALID")

	// ErrTokenInvalid means an activation or reset token is expired, forged or stale.
	ErrTokenInvalid = apperrors.NewCoded(apperrors.ErrInvalidInput, "TOKEN_INVALID")

	// ErrUserActive means the account is already active.
	ErrUserActive = apperrors.NewCoded(apperrors.ErrConflict, "USER_ACTIVE")

	// ErrUserInactive means the account has not been activated.
	ErrUserInactive = apperrors.NewCoded(apperrors.ErrConflict, "USER_INACTIVE")

	// ErrSignUpDisabled means sign-up is turned off by configuration.
	ErrSignUpDisabled = apperrors.NewCoded(apperrors.ErrForbidden, "SIGN_UP_DISABLED")
)
