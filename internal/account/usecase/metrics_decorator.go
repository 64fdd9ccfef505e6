package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/metrics"
)

const metricsDomain = "account"

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accountUseCaseWithMetrics) SignUp(
	ctx context.Context,
	input *domain.SignUpInput,
) (*domain.SignUpOutput, error) {
	start := time.Now()
	output, err := a.next.SignUp(ctx, input)
	metrics.Track(ctx, a.metrics, metricsDomain, "sign_up", start, err)
	return output, err
}

func (a *accountUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.SignUpInput,
	active bool,
) (*domain.SignUpOutput, error) {
	start := time.Now()
	output, err := a.next.Create(ctx, input, active)
	metrics.Track(ctx, a.metrics, metricsDomain, "create", start, err)
	return output, err
}

func (a *accountUseCaseWithMetrics) Activate(ctx context.Context, accountID uuid.UUID, token string) error {
	start := time.Now()
	err := a.next.Activate(ctx, accountID, token)
	metrics.Track(ctx, a.metrics, metricsDomain, "activate", start, err)
	return err
}

func (a *accountUseCaseWithMetrics) ResendActivation(ctx context.Context, accountID uuid.UUID) error {
	start := time.Now()
	err := a.next.ResendActivation(ctx, accountID)
	metrics.Track(ctx, a.metrics, metricsDomain, "resend_activation", start, err)
	return err
}

func (a *accountUseCaseWithMetrics) RequestPasswordReset(ctx context.Context, email string) error {
	start := time.Now()
	err := a.next.RequestPasswordReset(ctx, email)
	metrics.Track(ctx, a.metrics, metricsDomain, "request_password_reset", start, err)
	return err
}

func (a *accountUseCaseWithMetrics) ValidateResetToken(ctx context.Context, accountID uuid.UUID, token string) error {
	start := time.Now()
	err := a.next.ValidateResetToken(ctx, accountID, token)
	metrics.Track(ctx, a.metrics, metricsDomain, "validate_reset_token", start, err)
	return err
}

func (a *accountUseCaseWithMetrics) SetPassword(
	ctx context.Context,
	accountID uuid.UUID,
	token string,
	input *domain.SetPasswordInput,
) error {
	start := time.Now()
	err := a.next.SetPassword(ctx, accountID, token, input)
	metrics.Track(ctx, a.metrics, metricsDomain, "set_password", start, err)
	return err
}

func (a *accountUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	account *domain.Account,
	input *domain.ChangePasswordInput,
) error {
	start := time.Now()
	err := a.next.ChangePassword(ctx, account, input)
	metrics.Track(ctx, a.metrics, metricsDomain, "change_password", start, err)
	return err
}

func (a *accountUseCaseWithMetrics) UpdateDetails(
	ctx context.Context,
	account *domain.Account,
	input *domain.UpdateDetailsInput,
) (*domain.Account, error) {
	start := time.Now()
	updated, err := a.next.UpdateDetails(ctx, account, input)
	metrics.Track(ctx, a.metrics, metricsDomain, "update_details", start, err)
	return updated, err
}

func (a *accountUseCaseWithMetrics) Get(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.Get(ctx, accountID)
	metrics.Track(ctx, a.metrics, metricsDomain, "get", start, err)
	return account, err
}
