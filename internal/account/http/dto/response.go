package dto

import (
	"context"
	"time"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/account/profile"
)

// AccountResponse is the account payload shared by sign-up, sign-in, authenticate and update-details.
type AccountResponse struct {
	Token      string         `json:"token,omitempty"`
	UUID       string         `json:"uuid"`
	Email      string         `json:"email"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	FullName   string         `json:"full_name"`
	IsActive   bool           `json:"is_active"`
	DateJoined time.Time      `json:"date_joined"`
	LastLogin  *time.Time     `json:"last_login"`
	Profile    map[string]any `json:"profile,omitempty"`
}

// MapAccountToResponse converts a domain account to an API response without profile.
func MapAccountToResponse(account *domain.Account, token string) AccountResponse {
	return AccountResponse{
		Token:      token,
		UUID:       account.ID.String(),
		Email:      account.Email,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		FullName:   account.FullName(),
		IsActive:   account.IsActive,
		DateJoined: account.CreatedAt,
		LastLogin:  account.LastLoginAt,
	}
}

// AccountPresenter builds account responses and attaches the configured profile.
type AccountPresenter struct {
	provider profile.Provider
}

// NewAccountPresenter creates a presenter. A nil provider leaves the profile out.
func NewAccountPresenter(provider profile.Provider) *AccountPresenter {
	return &AccountPresenter{provider: provider}
}

// Present maps account and token, then resolves the profile.
func (p *AccountPresenter) Present(
	ctx context.Context,
	account *domain.Account,
	token string,
) (AccountResponse, error) {
	response := MapAccountToResponse(account, token)
	if p == nil || p.provider == nil {
		return response, nil
	}

	data, err := p.provider.Profile(ctx, account)
	if err != nil {
		return AccountResponse{}, err
	}
	response.Profile = data
	return response, nil
}

// EventResponse represents an account event in API responses.
type EventResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ListEventsResponse is a page of account events.
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEventsToListResponse converts domain events to a list API response.
func MapEventsToListResponse(events []*domain.Event) ListEventsResponse {
	data := make([]EventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, EventResponse{
			ID:        event.ID.String(),
			Type:      string(event.Type),
			Metadata:  event.Metadata,
			CreatedAt: event.CreatedAt,
		})
	}
	return ListEventsResponse{Data: data}
}
