package domain

import (
	"github.com/allisson/accounts/internal/errors"
)

// Session errors.
var (
	// ErrBearerTokenNotFound is returned by repositories when no token matches.
	ErrBearerTokenNotFound = errors.Wrap(errors.ErrNotFound, "bearer token not found")

	// ErrInvalidCredentials covers unknown email, wrong password and inactive account alike.
	ErrInvalidCredentials = errors.NewCoded(errors.ErrUnauthorized, "INVALID_CREDENTIALS")

	// ErrSignInDisabled means sign-in is turned off by configuration.
	ErrSignInDisabled = errors.NewCoded(errors.ErrForbidden, "SIGN_IN_DISABLED")

	// ErrTokenInvalid means the bearer token is unknown or revoked.
	ErrTokenInvalid = errors.NewCoded(errors.ErrUnauthorized, "TOKEN_INVALID")
)
