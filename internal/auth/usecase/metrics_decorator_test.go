package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectTrack(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "auth", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "auth", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestSessionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), IsActive: true}

	next := &mocks.MockSessionUseCase{}
	m := &mockBusinessMetrics{}
	useCase := NewSessionUseCaseWithMetrics(next, m)

	input := &authDomain.SignInInput{Email: "test@test.com", Password: "test1234"}
	next.On("SignIn", ctx, input).Return(nil, authDomain.ErrInvalidCredentials).Once()
	next.On("Authenticate", ctx, testKey).Return(account, nil).Once()
	next.On("IssueToken", ctx, account.ID).Return(testKey, nil).Once()
	next.On("SignOut", ctx, account).Return(nil).Once()
	next.On("Revoke", ctx, account.ID).Return(true, nil).Once()

	expectTrack(m, "sign_in", "rejected")
	expectTrack(m, "authenticate", "success")
	expectTrack(m, "issue_token", "success")
	expectTrack(m, "sign_out", "success")
	expectTrack(m, "revoke", "success")

	_, err := useCase.SignIn(ctx, input)
	assert.Equal(t, authDomain.ErrInvalidCredentials, err)

	got, err := useCase.Authenticate(ctx, testKey)
	assert.NoError(t, err)
	assert.Equal(t, account, got)

	key, err := useCase.IssueToken(ctx, account.ID)
	assert.NoError(t, err)
	assert.Equal(t, testKey, key)

	assert.NoError(t, useCase.SignOut(ctx, account))

	revoked, err := useCase.Revoke(ctx, account.ID)
	assert.NoError(t, err)
	assert.True(t, revoked)

	next.AssertExpectations(t)
	m.AssertExpectations(t)
}
