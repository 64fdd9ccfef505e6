package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
)

// eventUseCase implements EventUseCase.
type eventUseCase struct {
	eventRepo EventRepository
}

// List returns the account's events.
func (e *eventUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*domain.Event, error) {
	return e.eventRepo.ListByAccount(ctx, accountID, offset, limit)
}

// DeleteOlderThan removes events created more than days ago, measured in UTC.
func (e *eventUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, fmt.Errorf("days must be a positive number, got: %d", days)
	}
	olderThan := time.Now().UTC().AddDate(0, 0, -days)
	return e.eventRepo.DeleteOlderThan(ctx, olderThan, dryRun)
}

// NewEventUseCase creates a new EventUseCase.
func NewEventUseCase(eventRepo EventRepository) EventUseCase {
	return &eventUseCase{eventRepo: eventRepo}
}
