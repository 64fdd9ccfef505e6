// Package domain defines the session entities: the opaque bearer token bound to an
// account and the errors surfaced by sign-in and authentication.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Accepted Authorization header schemes.
const (
	SchemeBearer = "Bearer"
	SchemeToken  = "Token"
)

// CodeSignedOut is returned after the bearer token has been revoked.
const CodeSignedOut = "SIGNED_OUT"

// BearerToken is the credential returned by sign-up and sign-in.
//
// There is at most one token per account. It never expires and is only removed by
// explicit revocation.
type BearerToken struct {
	Key       string
	AccountID uuid.UUID
	CreatedAt time.Time
}
