package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	accountService "github.com/allisson/accounts/internal/account/service"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification"
)

// Config holds the switches and link base used by the account use case.
type Config struct {
	AppURL          string
	AllowSignUp     bool
	ForceActivation bool
}

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	cfg             Config
	txManager       database.TxManager
	accountRepo     AccountRepository
	tokenIssuer     TokenIssuer
	passwordService accountService.PasswordService
	tokenService    accountService.TokenService
	notifier        notification.Notifier
	hooks           []Hook
	logger          *slog.Logger
}

// SignUp creates an account from the public form.
func (a *accountUseCase) SignUp(ctx context.Context, input *domain.SignUpInput) (*domain.SignUpOutput, error) {
	if !a.cfg.AllowSignUp {
		return nil, domain.ErrSignUpDisabled
	}
	return a.create(ctx, input, !a.cfg.ForceActivation, true)
}

// Create creates an account from the command line.
func (a *accountUseCase) Create(
	ctx context.Context,
	input *domain.SignUpInput,
	active bool,
) (*domain.SignUpOutput, error) {
	return a.create(ctx, input, active, false)
}

func (a *accountUseCase) create(
	ctx context.Context,
	input *domain.SignUpInput,
	active bool,
	notify bool,
) (*domain.SignUpOutput, error) {
	input.Normalize()

	if err := a.validateDetails(ctx, input.Validate(), input.Email, uuid.Nil); err != nil {
		return nil, err
	}

	passwordHash, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	state := domain.InitialState(!active)
	if err := domain.Transition(domain.StateCreated, state); err != nil {
		return nil, err
	}

	firstName, lastName := domain.SplitFullName(input.FullName)
	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        input.Email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		IsActive:     state == domain.StateActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var key string
	err = a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := a.accountRepo.Create(txCtx, account); err != nil {
			if errors.Is(err, domain.ErrAccountAlreadyExists) {
				return apperrors.NewValidationError("email", domain.MsgEmailTaken)
			}
			return err
		}

		var err error
		key, err = a.tokenIssuer.IssueToken(txCtx, account.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if notify && !account.IsActive {
		a.sendLink(ctx, account, domain.PurposeActivation)
	}
	runHooks(ctx, a.logger, a.hooks, domain.NewEvent(domain.EventSignedUp, account.ID, map[string]any{
		"is_active": account.IsActive,
	}))

	return &domain.SignUpOutput{Account: account, Token: key}, nil
}

// Activate flips the active flag after checking the activation token against the
// locked account row.
func (a *accountUseCase) Activate(ctx context.Context, accountID uuid.UUID, token string) error {
	var activated bool
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		account, err := linkedAccount(a.accountRepo.GetByIDForUpdate(txCtx, accountID))
		if err != nil {
			return err
		}
		if !a.tokenService.Validate(account, domain.PurposeActivation, token) {
			return domain.ErrTokenInvalid
		}
		if account.IsActive {
			return nil
		}

		if err := domain.Transition(account.State(), domain.StateActive); err != nil {
			return err
		}

		activated = true
		return a.accountRepo.SetActive(txCtx, account.ID, time.Now().UTC())
	})
	if err != nil || !activated {
		return err
	}

	runHooks(ctx, a.logger, a.hooks, domain.NewEvent(domain.EventActivated, accountID, nil))
	return nil
}

// ResendActivation sends a fresh activation link.
func (a *accountUseCase) ResendActivation(ctx context.Context, accountID uuid.UUID) error {
	account, err := a.linkAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsActive {
		return domain.ErrUserActive
	}

	a.sendLink(ctx, account, domain.PurposeActivation)
	return nil
}

// RequestPasswordReset sends a reset link to the account owning email.
func (a *accountUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	input := domain.PasswordResetInput{Email: email}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return err
	}

	account, err := a.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	if !account.IsActive {
		return apperrors.NewValidationError(apperrors.NonFieldErrors, domain.MsgAccountInactive)
	}
	if err := domain.Transition(account.State(), domain.StatePasswordResetRequested); err != nil {
		return err
	}

	a.sendLink(ctx, account, domain.PurposePasswordReset)
	return nil
}

// ValidateResetToken checks the reset link.
func (a *accountUseCase) ValidateResetToken(ctx context.Context, accountID uuid.UUID, token string) error {
	account, err := a.linkAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !a.tokenService.Validate(account, domain.PurposePasswordReset, token) {
		return domain.ErrTokenInvalid
	}
	return nil
}

// SetPassword stores the new password behind a valid reset link.
//
// A stale link reports TOKEN_INVALID before any form error. The link is checked
// again against the locked row before the hash is written.
func (a *accountUseCase) SetPassword(
	ctx context.Context,
	accountID uuid.UUID,
	token string,
	input *domain.SetPasswordInput,
) error {
	if err := a.ValidateResetToken(ctx, accountID, token); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	passwordHash, err := a.passwordService.Hash(input.Password1)
	if err != nil {
		return err
	}

	err = a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		account, err := linkedAccount(a.accountRepo.GetByIDForUpdate(txCtx, accountID))
		if err != nil {
			return err
		}
		if !a.tokenService.Validate(account, domain.PurposePasswordReset, token) {
			return domain.ErrTokenInvalid
		}
		return a.accountRepo.SetPasswordHash(txCtx, account.ID, passwordHash, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	runHooks(ctx, a.logger, a.hooks, domain.NewEvent(domain.EventPasswordReset, accountID, nil))
	return nil
}

// ChangePassword verifies the old password before storing the new one. The check
// runs against the locked row, not the authenticated snapshot.
func (a *accountUseCase) ChangePassword(
	ctx context.Context,
	account *domain.Account,
	input *domain.ChangePasswordInput,
) error {
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		current, err := a.accountRepo.GetByIDForUpdate(txCtx, account.ID)
		if err != nil {
			return err
		}
		if !a.passwordService.Compare(input.OldPassword, current.PasswordHash) {
			return apperrors.NewValidationError("old_password", domain.CodePasswordIncorrect)
		}
		if err := input.SetPasswordInput.Validate(); err != nil {
			return err
		}

		passwordHash, err := a.passwordService.Hash(input.Password1)
		if err != nil {
			return err
		}
		return a.accountRepo.SetPasswordHash(txCtx, current.ID, passwordHash, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	runHooks(ctx, a.logger, a.hooks, domain.NewEvent(domain.EventPasswordChanged, account.ID, nil))
	return nil
}

// UpdateDetails changes name and email. The returned account is the locked row
// with the new details applied.
func (a *accountUseCase) UpdateDetails(
	ctx context.Context,
	account *domain.Account,
	input *domain.UpdateDetailsInput,
) (*domain.Account, error) {
	input.Normalize()

	if err := a.validateDetails(ctx, input.Validate(), input.Email, account.ID); err != nil {
		return nil, err
	}

	var updated *domain.Account
	var emailChanged bool
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		current, err := a.accountRepo.GetByIDForUpdate(txCtx, account.ID)
		if err != nil {
			return err
		}

		emailChanged = current.Email != input.Email
		current.FirstName, current.LastName = domain.SplitFullName(input.FullName)
		current.Email = input.Email
		current.UpdatedAt = time.Now().UTC()

		if err := a.accountRepo.UpdateDetails(txCtx, current); err != nil {
			if errors.Is(err, domain.ErrAccountAlreadyExists) {
				return apperrors.NewValidationError("email", domain.MsgEmailTaken)
			}
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	runHooks(ctx, a.logger, a.hooks, domain.NewEvent(domain.EventDetailsUpdated, account.ID, map[string]any{
		"email_changed": emailChanged,
	}))
	return updated, nil
}

// Get returns the account.
func (a *accountUseCase) Get(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	return a.accountRepo.GetByID(ctx, accountID)
}

// linkAccount resolves the account id carried by an activation or reset link.
func (a *accountUseCase) linkAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	return linkedAccount(a.accountRepo.GetByID(ctx, accountID))
}

// linkedAccount maps a missing link account to USER_INVALID.
func linkedAccount(account *domain.Account, err error) (*domain.Account, error) {
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUserInvalid
		}
		return nil, err
	}
	return account, nil
}

// validateDetails adds the email uniqueness check to the format errors in formatErr.
// Uniqueness is only checked once the email itself is well formed.
func (a *accountUseCase) validateDetails(
	ctx context.Context,
	formatErr error,
	email string,
	excludeID uuid.UUID,
) error {
	fields := &apperrors.ValidationError{Fields: map[string][]string{}}
	if formatErr != nil {
		if !apperrors.As(formatErr, &fields) {
			return formatErr
		}
	}

	if _, emailInvalid := fields.Fields["email"]; !emailInvalid {
		taken, err := a.accountRepo.ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			fields.Add("email", domain.MsgEmailTaken)
		}
	}

	if len(fields.Fields) > 0 {
		return fields
	}
	return nil
}

// sendLink issues a token for purpose and sends the matching notice. Delivery runs
// after the state change has committed; a failure is logged and swallowed.
func (a *accountUseCase) sendLink(ctx context.Context, account *domain.Account, purpose domain.TokenPurpose) {
	token, err := a.tokenService.Issue(account, purpose)
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to issue account token",
			slog.String("account_id", account.ID.String()),
			slog.String("purpose", string(purpose)),
			slog.Any("error", err),
		)
		return
	}

	kind := notification.KindActivation
	path := "/activate/"
	if purpose == domain.PurposePasswordReset {
		kind = notification.KindPasswordReset
		path = "/reset-password/"
	}

	notice := notification.Notice{
		Kind:       kind,
		Recipients: []string{account.Email},
		Context: map[string]string{
			notification.ContextURL:       a.cfg.AppURL + path + account.ID.String() + "/" + token + "/",
			notification.ContextFirstName: account.FirstName,
		},
	}

	if err := a.notifier.Send(ctx, notice); err != nil {
		a.logger.ErrorContext(ctx, "failed to send account notice",
			slog.String("account_id", account.ID.String()),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
	}
}

// NewAccountUseCase creates a new AccountUseCase with the provided dependencies.
// Hooks run in the given order after every committed transition.
func NewAccountUseCase(
	cfg Config,
	txManager database.TxManager,
	accountRepo AccountRepository,
	tokenIssuer TokenIssuer,
	passwordService accountService.PasswordService,
	tokenService accountService.TokenService,
	notifier notification.Notifier,
	hooks []Hook,
	logger *slog.Logger,
) AccountUseCase {
	return &accountUseCase{
		cfg:             cfg,
		txManager:       txManager,
		accountRepo:     accountRepo,
		tokenIssuer:     tokenIssuer,
		passwordService: passwordService,
		tokenService:    tokenService,
		notifier:        notifier,
		hooks:           hooks,
		logger:          logger,
	}
}
