package profile

import (
	"context"
	"crypto/md5" //nolint:gosec // gravatar addresses images by md5 of the email
	"encoding/hex"

	"github.com/allisson/accounts/internal/account/domain"
)

const (
	// GravatarProviderName is the registry name of the gravatar provider.
	GravatarProviderName = "gravatar"

	// GravatarBaseURL is the public gravatar avatar endpoint.
	GravatarBaseURL = "https://www.gravatar.com/avatar/"
)

type gravatarProvider struct {
	baseURL string
}

// NewGravatarProvider returns a provider exposing the account's gravatar URL.
func NewGravatarProvider(baseURL string) Provider {
	return gravatarProvider{baseURL: baseURL}
}

func (g gravatarProvider) Profile(_ context.Context, account *domain.Account) (map[string]any, error) {
	sum := md5.Sum([]byte(domain.NormalizeEmail(account.Email))) //nolint:gosec
	return map[string]any{
		"avatar_url": g.baseURL + hex.EncodeToString(sum[:]) + "?d=identicon",
	}, nil
}
