package profile

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/allisson/accounts/internal/account/domain"
)

// DisplayProviderName is the registry name of the display provider.
const DisplayProviderName = "display"

type displayProvider struct{}

// NewDisplayProvider returns a provider with the account's display name and initials.
func NewDisplayProvider() Provider {
	return displayProvider{}
}

func (displayProvider) Profile(_ context.Context, account *domain.Account) (map[string]any, error) {
	return map[string]any{
		"display_name": account.FullName(),
		"initials":     initials(account.FirstName, account.LastName),
	}, nil
}

func initials(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		r, _ := utf8.DecodeRuneInString(part)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
