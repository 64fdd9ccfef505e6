package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
)

// RunRevokeToken deletes the bearer token of an account, signing it out everywhere.
func RunRevokeToken(
	ctx context.Context,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	accountIDStr string,
	format string,
) error {
	accountID, err := uuid.Parse(accountIDStr)
	if err != nil {
		return fmt.Errorf("invalid account ID format: %w", err)
	}

	logger.Info("revoking token", slog.String("account_id", accountID.String()))

	revoked, err := sessionUseCase.Revoke(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"account_id": accountID.String(),
			"revoked":    revoked,
		})
	}

	if revoked {
		_, _ = fmt.Fprintf(writer, "Token revoked for account %s\n", accountID)
	} else {
		_, _ = fmt.Fprintf(writer, "Account %s has no token\n", accountID)
	}
	return nil
}
