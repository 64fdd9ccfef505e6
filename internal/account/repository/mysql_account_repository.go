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

const mysqlAccountColumns = `id, email, first_name, last_name, password_hash, is_active, created_at, updated_at, last_login_at`

// MySQLAccountRepository implements Account persistence for MySQL.
type MySQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account. A duplicate email returns ErrAccountAlreadyExists.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, m.db)

	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `INSERT INTO accounts (` + mysqlAccountColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLAccountRepository) UpdateDetails(ctx context.Context, account *domain.Account) error {
	query := `UPDATE accounts
			  SET email = ?,
			      first_name = ?,
			      last_name = ?,
			      updated_at = ?
			  WHERE id = ?`

	err := m.update(ctx, account.ID, query, account.Email, account.FirstName, account.LastName, account.UpdatedAt)
	if err != nil && database.IsUniqueViolation(err) {
		return domain.ErrAccountAlreadyExists
	}
	return err
}

// SetActive marks the account as active.
func (m *MySQLAccountRepository) SetActive(ctx context.Context, accountID uuid.UUID, updatedAt time.Time) error {
	query := `UPDATE accounts SET is_active = TRUE, updated_at = ? WHERE id = ?`

	return m.update(ctx, accountID, query, updatedAt)
}

// SetPasswordHash replaces the stored password hash.
func (m *MySQLAccountRepository) SetPasswordHash(
	ctx context.Context,
	accountID uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	query := `UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`

	return m.update(ctx, accountID, query, passwordHash, updatedAt)
}

// UpdateLastLogin records a successful sign-in.
func (m *MySQLAccountRepository) UpdateLastLogin(
	ctx context.Context,
	accountID uuid.UUID,
	lastLoginAt time.Time,
) error {
	query := `UPDATE accounts SET last_login_at = ? WHERE id = ?`

	return m.update(ctx, accountID, query, lastLoginAt)
}

// update runs query with args followed by the binary account id.
//
// MySQL reports zero affected rows when the values did not change, so a missing
// account is not detected here.
func (m *MySQLAccountRepository) update(ctx context.Context, accountID uuid.UUID, query string, args ...any) error {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	if _, err := querier.ExecContext(ctx, query, append(args, id)...); err != nil {
		if database.IsUniqueViolation(err) {
			return err
		}
		return apperrors.Wrap(err, "failed to update account")
	}
	return nil
}

// GetByID returns ErrAccountNotFound when no account has the id.
func (m *MySQLAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE id = ?`

	return m.scan(querier.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate reads the account and locks its row until the transaction
// carried by ctx ends.
func (m *MySQLAccountRepository) GetByIDForUpdate(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE id = ? FOR UPDATE`

	return m.scan(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail looks the account up by its normalized email.
func (m *MySQLAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE email = ?`

	return m.scan(querier.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// GetByEmailForUpdate is GetByEmail with a row lock held until the transaction
// carried by ctx ends.
func (m *MySQLAccountRepository) GetByEmailForUpdate(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE email = ? FOR UPDATE`

	return m.scan(querier.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// ExistsByEmail reports whether another account (any id but excludeID) uses the email.
func (m *MySQLAccountRepository) ExistsByEmail(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := excludeID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = ? AND id <> ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, domain.NormalizeEmail(email), id).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check account email")
	}
	return exists, nil
}

func (m *MySQLAccountRepository) scan(row *sql.Row) (*domain.Account, error) {
	var account domain.Account
	var idBytes []byte
	var lastLogin sql.NullTime

	err := row.Scan(
		&idBytes,
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

	if err := account.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		account.LastLoginAt = &t
	}
	return &account, nil
}

// NewMySQLAccountRepository creates a new MySQL Account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}
