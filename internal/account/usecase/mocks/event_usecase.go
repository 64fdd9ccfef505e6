package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/accounts/internal/account/domain"
)

// MockEventUseCase is a mock implementation of EventUseCase.
type MockEventUseCase struct {
	mock.Mock
}

func (m *MockEventUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*domain.Event, error) {
	args := m.Called(ctx, accountID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
