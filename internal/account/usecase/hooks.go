package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/accounts/internal/account/domain"
)

// Hook runs after a lifecycle transition has committed. Hooks run in order; an
// error is logged and does not stop the remaining hooks or fail the request.
type Hook func(ctx context.Context, event domain.Event) error

// NewEventRecorder returns a hook that appends every event to the account event log.
func NewEventRecorder(repo EventRepository) Hook {
	return func(ctx context.Context, event domain.Event) error {
		return repo.Create(ctx, &event)
	}
}

func runHooks(ctx context.Context, logger *slog.Logger, hooks []Hook, event domain.Event) {
	for i, hook := range hooks {
		if err := hook(ctx, event); err != nil {
			logger.ErrorContext(ctx, "account hook failed",
				slog.Int("hook", i),
				slog.String("event_type", string(event.Type)),
				slog.String("account_id", event.AccountID.String()),
				slog.Any("error", err),
			)
		}
	}
}
