// Package http provides the session endpoints and the middleware that resolves
// bearer tokens into request-scoped accounts.
package http

import (
	"context"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
)

// accountKey is a context key type for storing the authenticated account.
type accountKey struct{}

// WithAccount stores the authenticated account in the context.
func WithAccount(ctx context.Context, account *accountDomain.Account) context.Context {
	return context.WithValue(ctx, accountKey{}, account)
}

// GetAccount retrieves the authenticated account from the context.
// Returns (nil, false) outside AuthenticationMiddleware.
func GetAccount(ctx context.Context) (*accountDomain.Account, bool) {
	account, ok := ctx.Value(accountKey{}).(*accountDomain.Account)
	return account, ok && account != nil
}
