// Package repository implements account and account event persistence.
//
// PostgreSQL uses native UUID columns, MySQL stores UUIDs as BINARY(16). Every method
// runs on the transaction carried by the context when there is one (database.GetTx).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

const postgresAccountColumns = `id, email, first_name, last_name, password_hash, is_active, created_at, updated_at, last_login_at`

// PostgreSQLAccountRepository implements Account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account. A duplicate email returns ErrAccountAlreadyExists.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO accounts (` + postgresAccountColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.Email,
		account.FirstName,
		account.LastName,
		account.PasswordHash,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
		account.LastLoginAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// UpdateDetails writes the email and name columns of account.
// A duplicate email returns ErrAccountAlreadyExists.
func (p *PostgreSQLAccountRepository) UpdateDetails(ctx context.Context, account *domain.Account) error {
	query := `UPDATE accounts
			  SET email = $1,
			      first_name = $2,
			      last_name = $3,
			      updated_at = $4
			  WHERE id = $5`

	err := p.update(ctx, query, account.Email, account.FirstName, account.LastName, account.UpdatedAt, account.ID)
	if err != nil && database.IsUniqueViolation(err) {
		return domain.ErrAccountAlreadyExists
	}
	return err
}

// SetActive marks the account as active.
func (p *PostgreSQLAccountRepository) SetActive(ctx context.Context, accountID uuid.UUID, updatedAt time.Time) error {
	query := `UPDATE accounts SET is_active = TRUE, updated_at = $1 WHERE id = $2`

	return p.update(ctx, query, updatedAt, accountID)
}

// SetPasswordHash replaces the stored password hash.
func (p *PostgreSQLAccountRepository) SetPasswordHash(
	ctx context.Context,
	accountID uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	query := `UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`

	return p.update(ctx, query, passwordHash, updatedAt, accountID)
}

// UpdateLastLogin records a successful sign-in.
func (p *PostgreSQLAccountRepository) UpdateLastLogin(
	ctx context.Context,
	accountID uuid.UUID,
	lastLoginAt time.Time,
) error {
	query := `UPDATE accounts SET last_login_at = $1 WHERE id = $2`

	return p.update(ctx, query, lastLoginAt, accountID)
}

func (p *PostgreSQLAccountRepository) update(ctx context.Context, query string, args ...any) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return err
		}
		return apperrors.Wrap(err, "failed to update account")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows count")
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// GetByID returns ErrAccountNotFound when no account has the id.
func (p *PostgreSQLAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE id = $1`

	return p.scan(querier.QueryRowContext(ctx, query, accountID))
}

// GetByIDForUpdate reads the account and locks its row until the transaction
// carried by ctx ends.
func (p *PostgreSQLAccountRepository) GetByIDForUpdate(
	ctx context.Context,
	accountID uuid.UUID,
) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	return p.scan(querier.QueryRowContext(ctx, query, accountID))
}

// GetByEmail looks the account up by its normalized email.
func (p *PostgreSQLAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE email = $1`

	return p.scan(querier.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// GetByEmailForUpdate is GetByEmail with a row lock held until the transaction
// carried by ctx ends.
func (p *PostgreSQLAccountRepository) GetByEmailForUpdate(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE email = $1 FOR UPDATE`

	return p.scan(querier.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// ExistsByEmail reports whether another account (any id but excludeID) uses the email.
// Pass uuid.Nil to check against every account.
func (p *PostgreSQLAccountRepository) ExistsByEmail(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 AND id <> $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, domain.NormalizeEmail(email), excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check account email")
	}
	return exists, nil
}

func (p *PostgreSQLAccountRepository) scan(row *sql.Row) (*domain.Account, error) {
	var account domain.Account
	var lastLogin sql.NullTime

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.FirstName,
		&account.LastName,
		&account.PasswordHash,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		account.LastLoginAt = &t
	}
	return &account, nil
}

// NewPostgreSQLAccountRepository creates a new PostgreSQL Account repository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}
