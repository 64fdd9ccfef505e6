// Package profile exposes optional per-account profile data through named providers.
// A deployment picks at most one provider by name at start-up.
package profile

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/allisson/accounts/internal/account/domain"
)

// Provider returns profile attributes for an account.
type Provider interface {
	Profile(ctx context.Context, account *domain.Account) (map[string]any, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, account *domain.Account) (map[string]any, error)

// Profile calls f.
func (f ProviderFunc) Profile(ctx context.Context, account *domain.Account) (map[string]any, error) {
	return f(ctx, account)
}

// Registry maps provider names to providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry returns a registry holding the built-in providers.
func NewRegistry() *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	r.Register(DisplayProviderName, NewDisplayProvider())
	r.Register(GravatarProviderName, NewGravatarProvider(GravatarBaseURL))
	return r
}

// Register adds or replaces a provider.
func (r *Registry) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
}

// Resolve returns the named provider. An empty name resolves to nil (profiles
// disabled); an unknown name is an error.
func (r *Registry) Resolve(name string) (Provider, error) {
	if name == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile provider %q (available: %v)", name, r.namesLocked())
	}
	return provider, nil
}

// Names lists the registered provider names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
