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

// MySQLEventRepository implements account event persistence for MySQL.
type MySQLEventRepository struct {
	db *sql.DB
}

// Create inserts an event. Nil metadata is stored as NULL.
func (m *MySQLEventRepository) Create(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, m.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account event id")
	}
	accountID, err := event.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	var metadataJSON []byte
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal account event metadata")
		}
	}

	query := `INSERT INTO account_events (id, account_id, event_type, metadata, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, accountID, string(event.Type), metadataJSON, event.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create account event")
	}
	return nil
}

// ListByAccount returns the account's events newest first.
func (m *MySQLEventRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, m.db)

	accountIDBytes, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT id, account_id, event_type, metadata, created_at
			  FROM account_events
			  WHERE account_id = ?
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, accountIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list account events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		var idBytes, ownerBytes, metadataJSON []byte
		var eventType string

		if err := rows.Scan(&idBytes, &ownerBytes, &eventType, &metadataJSON, &event.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account event")
		}
		if err := event.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal account event id")
		}
		if err := event.AccountID.UnmarshalBinary(ownerBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal account id")
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
func (m *MySQLEventRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM account_events WHERE created_at < ?`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count account events")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM account_events WHERE created_at < ?`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete account events")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows count")
	}
	return count, nil
}

// NewMySQLEventRepository creates a new MySQL account event repository.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}
