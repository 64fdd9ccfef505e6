package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// MySQLTokenRepository implements BearerToken persistence for MySQL.
// KEY is reserved in MySQL, so the column is always quoted.
type MySQLTokenRepository struct {
	db *sql.DB
}

// GetOrCreate inserts token unless its account already has one, then returns the
// stored token.
func (m *MySQLTokenRepository) GetOrCreate(
	ctx context.Context,
	token *authDomain.BearerToken,
) (*authDomain.BearerToken, error) {
	querier := database.GetTx(ctx, m.db)

	accountID, err := token.AccountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := "INSERT IGNORE INTO tokens (`key`, account_id, created_at) VALUES (?, ?, ?)"

	if _, err := querier.ExecContext(ctx, query, token.Key, accountID, token.CreatedAt); err != nil {
		return nil, apperrors.Wrap(err, "failed to create bearer token")
	}

	return m.get(ctx, querier, "SELECT `key`, account_id, created_at FROM tokens WHERE account_id = ?", accountID)
}

// GetByKey returns ErrBearerTokenNotFound for an unknown key.
func (m *MySQLTokenRepository) GetByKey(ctx context.Context, key string) (*authDomain.BearerToken, error) {
	querier := database.GetTx(ctx, m.db)
	return m.get(ctx, querier, "SELECT `key`, account_id, created_at FROM tokens WHERE `key` = ?", key)
}

// DeleteByAccount revokes the account's token and reports whether one existed.
func (m *MySQLTokenRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal account id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE account_id = ?`, id)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to delete bearer token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get affected rows count")
	}
	return rows > 0, nil
}

func (m *MySQLTokenRepository) get(
	ctx context.Context,
	querier database.Querier,
	query string,
	arg any,
) (*authDomain.BearerToken, error) {
	var token authDomain.BearerToken
	var accountID []byte

	err := querier.QueryRowContext(ctx, query, arg).Scan(&token.Key, &accountID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrBearerTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get bearer token")
	}

	if err := token.AccountID.UnmarshalBinary(accountID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	return &token, nil
}

// NewMySQLTokenRepository creates a new MySQL BearerToken repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
