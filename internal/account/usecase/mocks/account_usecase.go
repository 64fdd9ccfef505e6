// Package mocks provides mock implementations of the account use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/accounts/internal/account/domain"
)

// MockAccountUseCase is a mock implementation of AccountUseCase.
type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) SignUp(ctx context.Context, input *domain.SignUpInput) (*domain.SignUpOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignUpOutput), args.Error(1)
}

func (m *MockAccountUseCase) Create(
	ctx context.Context,
	input *domain.SignUpInput,
	active bool,
) (*domain.SignUpOutput, error) {
	args := m.Called(ctx, input, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignUpOutput), args.Error(1)
}

func (m *MockAccountUseCase) Activate(ctx context.Context, accountID uuid.UUID, token string) error {
	args := m.Called(ctx, accountID, token)
	return args.Error(0)
}

func (m *MockAccountUseCase) ResendActivation(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAccountUseCase) ValidateResetToken(ctx context.Context, accountID uuid.UUID, token string) error {
	args := m.Called(ctx, accountID, token)
	return args.Error(0)
}

func (m *MockAccountUseCase) SetPassword(
	ctx context.Context,
	accountID uuid.UUID,
	token string,
	input *domain.SetPasswordInput,
) error {
	args := m.Called(ctx, accountID, token, input)
	return args.Error(0)
}

func (m *MockAccountUseCase) ChangePassword(
	ctx context.Context,
	account *domain.Account,
	input *domain.ChangePasswordInput,
) error {
	args := m.Called(ctx, account, input)
	return args.Error(0)
}

func (m *MockAccountUseCase) UpdateDetails(
	ctx context.Context,
	account *domain.Account,
	input *domain.UpdateDetailsInput,
) (*domain.Account, error) {
	args := m.Called(ctx, account, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountUseCase) Get(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
