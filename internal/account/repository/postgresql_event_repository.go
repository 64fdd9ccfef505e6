package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// PostgreSQLEventRepository implements account event persistence for PostgreSQL.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// Create inserts an event. Nil metadata is stored as NULL.
func (p *PostgreSQLEventRepository) Create(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, p.db)

	var metadataJSON []byte
	if event.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal account event metadata")
		}
	}

	query := `INSERT INTO account_events (id, account_id, event_type, metadata, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.AccountID,
		string(event.Type),
		metadataJSON,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create account event")
	}
	return nil
}

// ListByAccount returns the account's events newest first.
func (p *PostgreSQLEventRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, event_type, metadata, created_at
			  FROM account_events
			  WHERE account_id = $1
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list account events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		var eventType string
		var metadataJSON []byte

		if err := rows.Scan(&event.ID, &event.AccountID, &eventType, &metadataJSON, &event.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account event")
		}

		event.Type = domain.EventType(eventType)
		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal account event metadata")
			}
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate account events")
	}
	return events, nil
}

// DeleteOlderThan removes events created before olderThan. With dryRun it only
// counts them.
func (p *PostgreSQLEventRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM account_events WHERE created_at < $1`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count account events")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM account_events WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete account events")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows count")
	}
	return count, nil
}

// NewPostgreSQLEventRepository creates a new PostgreSQL account event repository.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}
