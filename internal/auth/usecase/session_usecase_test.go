package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	databaseMocks "github.com/allisson/accounts/internal/database/mocks"
	apperrors "github.com/allisson/accounts/internal/errors"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *mockAccountRepository) GetByEmailForUpdate(ctx context.Context, email string) (*accountDomain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *mockAccountRepository) UpdateLastLogin(ctx context.Context, accountID uuid.UUID, lastLoginAt time.Time) error {
	args := m.Called(ctx, accountID, lastLoginAt)
	return args.Error(0)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) GetOrCreate(
	ctx context.Context,
	token *authDomain.BearerToken,
) (*authDomain.BearerToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.BearerToken), args.Error(1)
}

func (m *mockTokenRepository) GetByKey(ctx context.Context, key string) (*authDomain.BearerToken, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.BearerToken), args.Error(1)
}

func (m *mockTokenRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

type mockPasswordComparer struct {
	mock.Mock
}

func (m *mockPasswordComparer) Compare(plainPassword, passwordHash string) bool {
	args := m.Called(plainPassword, passwordHash)
	return args.Bool(0)
}

type mockKeyService struct {
	mock.Mock
}

func (m *mockKeyService) GenerateKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type sessionFixture struct {
	useCase          SessionUseCase
	txManager        *databaseMocks.MockTxManager
	accountRepo      *mockAccountRepository
	tokenRepo        *mockTokenRepository
	passwordComparer *mockPasswordComparer
	keyService       *mockKeyService
}

func newSessionFixture(t *testing.T, allowSignIn bool) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		txManager:        &databaseMocks.MockTxManager{},
		accountRepo:      &mockAccountRepository{},
		tokenRepo:        &mockTokenRepository{},
		passwordComparer: &mockPasswordComparer{},
		keyService:       &mockKeyService{},
	}
	f.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.useCase = NewSessionUseCase(
		Config{AllowSignIn: allowSignIn},
		f.txManager,
		f.accountRepo,
		f.tokenRepo,
		f.passwordComparer,
		f.keyService,
	)

	t.Cleanup(func() {
		f.accountRepo.AssertExpectations(t)
		f.tokenRepo.AssertExpectations(t)
		f.passwordComparer.AssertExpectations(t)
		f.keyService.AssertExpectations(t)
	})
	return f
}

func newAccount(active bool) *accountDomain.Account {
	return &accountDomain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        "test@test.com",
		FirstName:    "Ethan",
		PasswordHash: "hash",
		IsActive:     active,
	}
}

const testKey = "0123456789abcdef0123456789abcdef01234567"

func TestSessionUseCase_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newSessionFixture(t, true)
		account := newAccount(true)

		f.accountRepo.On("GetByEmailForUpdate", ctx, "test@test.com").Return(account, nil).Once()
		f.passwordComparer.On("Compare", "test1234", "hash").Return(true).Once()
		f.accountRepo.On("UpdateLastLogin", mock.Anything, account.ID, mock.AnythingOfType("time.Time")).
			Return(nil).Once()
		f.keyService.On("GenerateKey").Return("candidate", nil).Once()
		f.tokenRepo.On("GetOrCreate", mock.Anything, mock.MatchedBy(func(token *authDomain.BearerToken) bool {
			return token.Key == "candidate" && token.AccountID == account.ID
		})).Return(&authDomain.BearerToken{Key: testKey, AccountID: account.ID}, nil).Once()

		session, err := f.useCase.SignIn(ctx, &authDomain.SignInInput{Email: " TEST@test.com", Password: "test1234"})

		require.NoError(t, err)
		assert.Equal(t, testKey, session.Token)
		require.NotNil(t, session.Account.LastLoginAt)
		assert.WithinDuration(t, time.Now().UTC(), *session.Account.LastLoginAt, time.Minute)
	})

	t.Run("Error_Disabled", func(t *testing.T) {
		f := newSessionFixture(t, false)

		_, err := f.useCase.SignIn(ctx, &authDomain.SignInInput{Email: "test@test.com", Password: "test1234"})

		assert.Equal(t, "SIGN_IN_DISABLED", apperrors.Code(err))
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		f := newSessionFixture(t, true)

		_, err := f.useCase.SignIn(ctx, &authDomain.SignInInput{})

		var validationErr *apperrors.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Contains(t, validationErr.Fields, "email")
		assert.Contains(t, validationErr.Fields, "password")
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		f := newSessionFixture(t, true)

		f.accountRepo.On("GetByEmailForUpdate", ctx, "nobody@test.com").Return(nil, accountDomain.ErrAccountNotFound).Once()

		_, err := f.useCase.SignIn(ctx, &authDomain.SignInInput{Email: "nobody@test.com", Password: "test1234"})

		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.Code(err))
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		f := newSessionFixture(t, true)
		account := newAccount(true)

		f.accountRepo.On("GetByEmailForUpdate", ctx, "test@test.com").Return(account, nil).Once()
		f.passwordComparer.On("Compare", "wrong1", "hash").Return(false).Once()

		_, err := f.useCase.SignIn(ctx, &authDomain.SignInInput{Email: "test@test.com", Password: "wrong1"})

		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.Code(err))
	})

	t.Run("Error_InactiveAccount", func(t *testing.T) {
		f := newSessionFixture(t, true)
		account := newAccount(false)

		f.accountRepo.On("GetByEmailForUpdate", ctx, "test@test.com").Return(account, nil).Once()
		f.passwordComparer.On("Compare", "test1234", "hash").Return(true).Once()

		_, err := f.useCase.SignIn(ctx, &authDomain.SignInInput{Email: "test@test.com", Password: "test1234"})

		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.Code(err))
	})

	t.Run("Error_TokenStoreFails", func(t *testing.T) {
		f := newSessionFixture(t, true)
		account := newAccount(true)

		f.accountRepo.On("GetByEmailForUpdate", ctx, "test@test.com").Return(account, nil).Once()
		f.passwordComparer.On("Compare", "test1234", "hash").Return(true).Once()
		f.accountRepo.On("UpdateLastLogin", mock.Anything, account.ID, mock.Anything).Return(nil).Once()
		f.keyService.On("GenerateKey").Return("candidate", nil).Once()
		f.tokenRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		session, err := f.useCase.SignIn(ctx, &authDomain.SignInInput{Email: "test@test.com", Password: "test1234"})

		assert.Nil(t, session)
		assert.Equal(t, assert.AnError, err)
	})
}

func TestSessionUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newSessionFixture(t, true)
		account := newAccount(true)

		f.tokenRepo.On("GetByKey", ctx, testKey).
			Return(&authDomain.BearerToken{Key: testKey, AccountID: account.ID}, nil).Once()
		f.accountRepo.On("GetByID", ctx, account.ID).Return(account, nil).Once()

		got, err := f.useCase.Authenticate(ctx, testKey)

		require.NoError(t, err)
		assert.Equal(t, account, got)
	})

	t.Run("Error_EmptyKey", func(t *testing.T) {
		f := newSessionFixture(t, true)

		_, err := f.useCase.Authenticate(ctx, "")

		assert.Equal(t, authDomain.ErrTokenInvalid, err)
	})

	t.Run("Error_UnknownKey", func(t *testing.T) {
		f := newSessionFixture(t, true)

		f.tokenRepo.On("GetByKey", ctx, "nope").Return(nil, authDomain.ErrBearerTokenNotFound).Once()

		_, err := f.useCase.Authenticate(ctx, "nope")

		assert.Equal(t, "TOKEN_INVALID", apperrors.Code(err))
	})

	t.Run("Error_InactiveAccount", func(t *testing.T) {
		f := newSessionFixture(t, true)
		account := newAccount(false)

		f.tokenRepo.On("GetByKey", ctx, testKey).
			Return(&authDomain.BearerToken{Key: testKey, AccountID: account.ID}, nil).Once()
		f.accountRepo.On("GetByID", ctx, account.ID).Return(account, nil).Once()

		_, err := f.useCase.Authenticate(ctx, testKey)

		assert.Equal(t, "USER_INACTIVE", apperrors.Code(err))
	})

	t.Run("Error_StoreFailure", func(t *testing.T) {
		f := newSessionFixture(t, true)

		f.tokenRepo.On("GetByKey", ctx, testKey).Return(nil, assert.AnError).Once()

		_, err := f.useCase.Authenticate(ctx, testKey)

		assert.Equal(t, assert.AnError, err)
	})
}

func TestSessionUseCase_IssueToken(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsStoredKey", func(t *testing.T) {
		f := newSessionFixture(t, true)
		accountID := uuid.Must(uuid.NewV7())

		f.keyService.On("GenerateKey").Return("candidate", nil).Once()
		f.tokenRepo.On("GetOrCreate", ctx, mock.AnythingOfType("*domain.BearerToken")).
			Return(&authDomain.BearerToken{Key: testKey, AccountID: accountID}, nil).Once()

		key, err := f.useCase.IssueToken(ctx, accountID)

		require.NoError(t, err)
		assert.Equal(t, testKey, key)
	})

	t.Run("Error_KeyGeneration", func(t *testing.T) {
		f := newSessionFixture(t, true)

		f.keyService.On("GenerateKey").Return("", assert.AnError).Once()

		_, err := f.useCase.IssueToken(ctx, uuid.Must(uuid.NewV7()))

		assert.Equal(t, assert.AnError, err)
	})
}

func TestSessionUseCase_SignOutAndRevoke(t *testing.T) {
	ctx := context.Background()

	t.Run("SignOut", func(t *testing.T) {
		f := newSessionFixture(t, true)
		account := newAccount(true)

		f.tokenRepo.On("DeleteByAccount", mock.Anything, account.ID).Return(true, nil).Once()

		assert.NoError(t, f.useCase.SignOut(ctx, account))
	})

	t.Run("RevokeWithoutToken", func(t *testing.T) {
		f := newSessionFixture(t, true)
		accountID := uuid.Must(uuid.NewV7())

		f.tokenRepo.On("DeleteByAccount", mock.Anything, accountID).Return(false, nil).Once()

		revoked, err := f.useCase.Revoke(ctx, accountID)

		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("RevokeFailure", func(t *testing.T) {
		f := newSessionFixture(t, true)
		accountID := uuid.Must(uuid.NewV7())

		f.tokenRepo.On("DeleteByAccount", mock.Anything, accountID).Return(false, assert.AnError).Once()

		_, err := f.useCase.Revoke(ctx, accountID)

		assert.Equal(t, assert.AnError, err)
	})
}
