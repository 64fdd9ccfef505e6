// Package mocks provides mock implementations of the database interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager. Unless the
// expectation returns an error, the function runs with the given context.
type MockTxManager struct {
	mock.Mock
}

// WithTx records the call and then runs fn.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
