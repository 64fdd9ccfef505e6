package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authService "github.com/allisson/accounts/internal/auth/service"
	"github.com/allisson/accounts/internal/database"
)

// Config holds the session switches.
type Config struct {
	AllowSignIn bool
}

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	cfg              Config
	txManager        database.TxManager
	accountRepo      AccountRepository
	tokenRepo        TokenRepository
	passwordComparer PasswordComparer
	keyService       authService.KeyService
}

// SignIn verifies email and password.
//
// The account row stays locked from the password check until the login time and
// token are committed. Only last_login_at is written back. The account lookup and
// the password check are both funnelled into ErrInvalidCredentials so callers
// cannot tell which one failed.
func (s *sessionUseCase) SignIn(ctx context.Context, input *authDomain.SignInInput) (*authDomain.Session, error) {
	if !s.cfg.AllowSignIn {
		return nil, authDomain.ErrSignInDisabled
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var session *authDomain.Session
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		account, err := s.accountRepo.GetByEmailForUpdate(txCtx, input.Email)
		if err != nil {
			if errors.Is(err, accountDomain.ErrAccountNotFound) {
				return authDomain.ErrInvalidCredentials
			}
			return err
		}

		if !s.passwordComparer.Compare(input.Password, account.PasswordHash) || !account.IsActive {
			return authDomain.ErrInvalidCredentials
		}

		now := time.Now().UTC()
		if err := s.accountRepo.UpdateLastLogin(txCtx, account.ID, now); err != nil {
			return err
		}
		account.LastLoginAt = &now

		key, err := s.IssueToken(txCtx, account.ID)
		if err != nil {
			return err
		}
		session = &authDomain.Session{Account: account, Token: key}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Authenticate looks up the token key and its account.
func (s *sessionUseCase) Authenticate(ctx context.Context, key string) (*accountDomain.Account, error) {
	if key == "" {
		return nil, authDomain.ErrTokenInvalid
	}

	token, err := s.tokenRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, authDomain.ErrBearerTokenNotFound) {
			return nil, authDomain.ErrTokenInvalid
		}
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, token.AccountID)
	if err != nil {
		// The foreign key cascades, so a dangling token only shows up mid-deletion.
		if errors.Is(err, accountDomain.ErrAccountNotFound) {
			return nil, authDomain.ErrTokenInvalid
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, accountDomain.ErrUserInactive
	}
	return account, nil
}

// IssueToken generates a candidate key and keeps whichever key the store ends up with.
func (s *sessionUseCase) IssueToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	key, err := s.keyService.GenerateKey()
	if err != nil {
		return "", err
	}

	token, err := s.tokenRepo.GetOrCreate(ctx, &authDomain.BearerToken{
		Key:       key,
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	return token.Key, nil
}

// SignOut deletes the account's token.
func (s *sessionUseCase) SignOut(ctx context.Context, account *accountDomain.Account) error {
	_, err := s.Revoke(ctx, account.ID)
	return err
}

// Revoke deletes the account's token.
func (s *sessionUseCase) Revoke(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var revoked bool
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		revoked, err = s.tokenRepo.DeleteByAccount(txCtx, accountID)
		return err
	})
	return revoked, err
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	cfg Config,
	txManager database.TxManager,
	accountRepo AccountRepository,
	tokenRepo TokenRepository,
	passwordComparer PasswordComparer,
	keyService authService.KeyService,
) SessionUseCase {
	return &sessionUseCase{
		cfg:              cfg,
		txManager:        txManager,
		accountRepo:      accountRepo,
		tokenRepo:        tokenRepo,
		passwordComparer: passwordComparer,
		keyService:       keyService,
	}
}
