package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/allisson/accounts/internal/account/domain"
	accountUseCase "github.com/allisson/accounts/internal/account/usecase"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// RunCreateAccount creates an account from the command line. When password is empty it is
// read from the first line of io.Reader. Active accounts skip the activation email.
func RunCreateAccount(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	io IOTuple,
	fullName string,
	email string,
	password string,
	active bool,
	format string,
) error {
	if password == "" {
		_, _ = fmt.Fprint(io.Writer, "Password: ")
		scanner := bufio.NewScanner(io.Reader)
		if scanner.Scan() {
			password = strings.TrimRight(scanner.Text(), "\r\n")
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		_, _ = fmt.Fprintln(io.Writer)
	}

	logger.Info("creating account", slog.String("email", email), slog.Bool("active", active))

	output, err := accountUseCase.Create(ctx, &domain.SignUpInput{
		FullName: fullName,
		Email:    email,
		Password: password,
	}, active)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if apperrors.As(err, &validationErr) {
			return fmt.Errorf("invalid account: %v", validationErr.Fields)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	account := output.Account
	if format == "json" {
		if err := writeJSON(io.Writer, map[string]any{
			"id":        account.ID.String(),
			"email":     account.Email,
			"is_active": account.IsActive,
			"token":     output.Token,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(io.Writer, "Account created successfully\n")
		_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", account.ID)
		_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", account.Email)
		_, _ = fmt.Fprintf(io.Writer, "Active: %t\n", account.IsActive)
		_, _ = fmt.Fprintf(io.Writer, "Token: %s\n", output.Token)
	}

	logger.Info("account created", slog.String("account_id", account.ID.String()))
	return nil
}
