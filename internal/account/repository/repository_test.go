package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/account/domain"
)

var accountColumns = []string{
	"id", "email", "first_name", "last_name", "password_hash", "is_active", "created_at", "updated_at", "last_login_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestAccount() *domain.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        "ethan@example.com",
		FirstName:    "Ethan",
		LastName:     "Blue",
		PasswordHash: "$argon2id$hash",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
