package notification

import (
	"context"
	"log/slog"
)

// LogNotifier writes notices to the logger instead of delivering them. The notice
// context carries live links, so it is only logged at debug level.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the notice.
func (l *LogNotifier) Send(ctx context.Context, notice Notice) error {
	if err := notice.Validate(); err != nil {
		return err
	}

	l.logger.InfoContext(ctx, "notice sent",
		slog.String("kind", string(notice.Kind)),
		slog.Int("recipients", len(notice.Recipients)),
	)
	l.logger.DebugContext(ctx, "notice context",
		slog.String("kind", string(notice.Kind)),
		slog.Any("recipients", notice.Recipients),
		slog.Any("context", notice.Context),
	)
	return nil
}
