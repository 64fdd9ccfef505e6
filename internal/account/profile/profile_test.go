package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/account/domain"
)

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry()

	t.Run("Success_Empty", func(t *testing.T) {
		provider, err := registry.Resolve("")
		require.NoError(t, err)
		assert.Nil(t, provider)
	})

	t.Run("Success_BuiltIn", func(t *testing.T) {
		provider, err := registry.Resolve(DisplayProviderName)
		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	t.Run("Error_Unknown", func(t *testing.T) {
		_, err := registry.Resolve("ldap")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "display")
	})

	t.Run("Success_Custom", func(t *testing.T) {
		registry.Register("static", ProviderFunc(func(context.Context, *domain.Account) (map[string]any, error) {
			return map[string]any{"plan": "free"}, nil
		}))

		provider, err := registry.Resolve("static")
		require.NoError(t, err)

		data, err := provider.Profile(context.Background(), &domain.Account{})
		require.NoError(t, err)
		assert.Equal(t, "free", data["plan"])
		assert.Equal(t, []string{"display", "gravatar", "static"}, registry.Names())
	})
}

func TestDisplayProvider(t *testing.T) {
	provider := NewDisplayProvider()

	data, err := provider.Profile(context.Background(), &domain.Account{FirstName: "ethan", LastName: "sky blue"})
	require.NoError(t, err)
	assert.Equal(t, "ethan sky blue", data["display_name"])
	assert.Equal(t, "ES", data["initials"])

	data, err = provider.Profile(context.Background(), &domain.Account{FirstName: "Zoë"})
	require.NoError(t, err)
	assert.Equal(t, "Zoë", data["display_name"])
	assert.Equal(t, "Z", data["initials"])
}

func TestGravatarProvider(t *testing.T) {
	provider := NewGravatarProvider(GravatarBaseURL)

	data, err := provider.Profile(context.Background(), &domain.Account{Email: " MyEmailAddress@example.com "})
	require.NoError(t, err)
	assert.Equal(t,
		"https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=identicon",
		data["avatar_url"],
	)
}
