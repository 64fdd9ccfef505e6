package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SignIn records metrics for sign-in attempts.
func (s *sessionUseCaseWithMetrics) SignIn(
	ctx context.Context,
	input *authDomain.SignInInput,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.SignIn(ctx, input)
	metrics.Track(ctx, s.metrics, "auth", "sign_in", start, err)
	return session, err
}

// Authenticate records metrics for token authentication.
func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, key string) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := s.next.Authenticate(ctx, key)
	metrics.Track(ctx, s.metrics, "auth", "authenticate", start, err)
	return account, err
}

// IssueToken records metrics for token issuance.
func (s *sessionUseCaseWithMetrics) IssueToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	start := time.Now()
	key, err := s.next.IssueToken(ctx, accountID)
	metrics.Track(ctx, s.metrics, "auth", "issue_token", start, err)
	return key, err
}

// SignOut records metrics for sign-out.
func (s *sessionUseCaseWithMetrics) SignOut(ctx context.Context, account *accountDomain.Account) error {
	start := time.Now()
	err := s.next.SignOut(ctx, account)
	metrics.Track(ctx, s.metrics, "auth", "sign_out", start, err)
	return err
}

// Revoke records metrics for token revocation.
func (s *sessionUseCaseWithMetrics) Revoke(ctx context.Context, accountID uuid.UUID) (bool, error) {
	start := time.Now()
	revoked, err := s.next.Revoke(ctx, accountID)
	metrics.Track(ctx, s.metrics, "auth", "revoke", start, err)
	return revoked, err
}
