package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	accountUseCase "github.com/allisson/accounts/internal/account/usecase"
)

// RunCleanAccountEvents deletes account events older than days. With dryRun it only
// reports how many would be deleted. Output is text or JSON.
func RunCleanAccountEvents(
	ctx context.Context,
	eventUseCase accountUseCase.EventUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning account events",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := eventUseCase.DeleteOlderThan(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to delete account events: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"count":   count,
			"days":    days,
			"dry_run": dryRun,
		}); err != nil {
			return err
		}
	} else if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d account event(s) older than %d day(s)\n", count, days)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d account event(s) older than %d day(s)\n", count, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}
