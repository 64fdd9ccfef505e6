// Package repository implements bearer token persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// PostgreSQL uses native UUID types, MySQL uses BINARY(16) types.
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

// PostgreSQLTokenRepository implements BearerToken persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// GetOrCreate inserts token unless its account already has one, then returns the
// stored token. Concurrent callers for the same account end up with the same key.
func (p *PostgreSQLTokenRepository) GetOrCreate(
	ctx context.Context,
	token *authDomain.BearerToken,
) (*authDomain.BearerToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (key, account_id, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (account_id) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, token.Key, token.AccountID, token.CreatedAt); err != nil {
		return nil, apperrors.Wrap(err, "failed to create bearer token")
	}

	return p.get(ctx, querier, `SELECT key, account_id, created_at FROM tokens WHERE account_id = $1`, token.AccountID)
}

// GetByKey returns ErrBearerTokenNotFound for an unknown key.
func (p *PostgreSQLTokenRepository) GetByKey(ctx context.Context, key string) (*authDomain.BearerToken, error) {
	querier := database.GetTx(ctx, p.db)
	return p.get(ctx, querier, `SELECT key, account_id, created_at FROM tokens WHERE key = $1`, key)
}

// DeleteByAccount revokes the account's token and reports whether one existed.
func (p *PostgreSQLTokenRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE account_id = $1`, accountID)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to delete bearer token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get affected rows count")
	}
	return rows > 0, nil
}

func (p *PostgreSQLTokenRepository) get(
	ctx context.Context,
	querier database.Querier,
	query string,
	arg any,
) (*authDomain.BearerToken, error) {
	var token authDomain.BearerToken

	err := querier.QueryRowContext(ctx, query, arg).Scan(&token.Key, &token.AccountID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrBearerTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get bearer token")
	}
	return &token, nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL BearerToken repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}
