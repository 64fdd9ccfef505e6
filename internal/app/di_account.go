package app

import (
	"context"
	"fmt"

	accountHTTP "github.com/allisson/accounts/internal/account/http"
	accountDTO "github.com/allisson/accounts/internal/account/http/dto"
	"github.com/allisson/accounts/internal/account/profile"
	accountRepository "github.com/allisson/accounts/internal/account/repository"
	accountService "github.com/allisson/accounts/internal/account/service"
	accountUseCase "github.com/allisson/accounts/internal/account/usecase"
	cryptoService "github.com/allisson/accounts/internal/crypto/service"
	"github.com/allisson/accounts/internal/database"
)

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	var err error
	c.accountRepositoryInit.Do(func() {
		c.accountRepository, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepository"]; exists {
		return nil, storedErr
	}
	return c.accountRepository, nil
}

// EventRepository returns the account event repository based on database driver.
func (c *Container) EventRepository() (accountUseCase.EventRepository, error) {
	var err error
	c.eventRepositoryInit.Do(func() {
		c.eventRepository, err = c.initEventRepository()
		if err != nil {
			c.initErrors["eventRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventRepository"]; exists {
		return nil, storedErr
	}
	return c.eventRepository, nil
}

// PasswordService returns the Argon2id password hasher for the configured policy.
func (c *Container) PasswordService() (accountService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = accountService.NewPasswordService(c.config.PasswordHashPolicy)
		if err != nil {
			c.initErrors["passwordService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// TokenService returns the activation and password reset token service.
func (c *Container) TokenService() (accountService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// AccountPresenter returns the account response presenter with the configured profile provider.
func (c *Container) AccountPresenter() (*accountDTO.AccountPresenter, error) {
	var err error
	c.presenterInit.Do(func() {
		var provider profile.Provider
		provider, err = profile.NewRegistry().Resolve(c.config.ProfileProvider)
		if err != nil {
			c.initErrors["presenter"] = err
			return
		}
		c.presenter = accountDTO.NewAccountPresenter(provider)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["presenter"]; exists {
		return nil, storedErr
	}
	return c.presenter, nil
}

// AccountUseCase returns the account lifecycle use case.
func (c *Container) AccountUseCase() (accountUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// EventUseCase returns the account event log use case.
func (c *Container) EventUseCase() (accountUseCase.EventUseCase, error) {
	var err error
	c.eventUseCaseInit.Do(func() {
		c.eventUseCase, err = c.initEventUseCase()
		if err != nil {
			c.initErrors["eventUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventUseCase"]; exists {
		return nil, storedErr
	}
	return c.eventUseCase, nil
}

// AccountHandler returns the account HTTP handler.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	var err error
	c.accountHandlerInit.Do(func() {
		c.accountHandler, err = c.initAccountHandler()
		if err != nil {
			c.initErrors["accountHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountHandler"]; exists {
		return nil, storedErr
	}
	return c.accountHandler, nil
}

// EventHandler returns the account event HTTP handler.
func (c *Container) EventHandler() (*accountHTTP.EventHandler, error) {
	var err error
	c.eventHandlerInit.Do(func() {
		c.eventHandler, err = c.initEventHandler()
		if err != nil {
			c.initErrors["eventHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventHandler"]; exists {
		return nil, storedErr
	}
	return c.eventHandler, nil
}

func (c *Container) initAccountRepository() (accountUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return accountRepository.NewMySQLAccountRepository(db), nil
	case database.DriverPostgres:
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEventRepository() (accountUseCase.EventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for event repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return accountRepository.NewMySQLEventRepository(db), nil
	case database.DriverPostgres:
		return accountRepository.NewPostgreSQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenService resolves the signing secret, decrypting it through KMS when a key
// URI is configured.
func (c *Container) initTokenService() (accountService.TokenService, error) {
	secret := []byte(c.config.TokenSecret)

	if c.config.TokenSecretKMSKeyURI != "" {
		plaintext, err := cryptoService.NewKMSService().DecryptSecret(
			context.Background(),
			c.config.TokenSecretKMSKeyURI,
			c.config.TokenSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt token secret: %w", err)
		}
		secret = plaintext
	}

	tokenService, err := accountService.NewTokenService(accountService.TokenConfig{
		Secret:     secret,
		Expiration: c.config.TokenExpiration,
		BucketSize: c.config.TokenBucketSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}

func (c *Container) initAccountUseCase() (accountUseCase.AccountUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for account use case: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for account use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for account use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for account use case: %w", err)
	}

	notifier, err := c.Notifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get notifier for account use case: %w", err)
	}

	hooks := []accountUseCase.Hook{
		accountUseCase.NewEventRecorder(eventRepo),
	}

	baseUseCase := accountUseCase.NewAccountUseCase(
		accountUseCase.Config{
			AppURL:          c.config.AppURL,
			AllowSignUp:     c.config.AllowSignUp,
			ForceActivation: c.config.ForceActivation,
		},
		txManager,
		accountRepo,
		sessionUseCase,
		passwordService,
		tokenService,
		notifier,
		hooks,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUseCase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initEventUseCase() (accountUseCase.EventUseCase, error) {
	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for event use case: %w", err)
	}
	return accountUseCase.NewEventUseCase(eventRepo), nil
}

func (c *Container) initAccountHandler() (*accountHTTP.AccountHandler, error) {
	useCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for account handler: %w", err)
	}

	presenter, err := c.AccountPresenter()
	if err != nil {
		return nil, fmt.Errorf("failed to get account presenter for account handler: %w", err)
	}

	return accountHTTP.NewAccountHandler(useCase, presenter, c.Logger()), nil
}

func (c *Container) initEventHandler() (*accountHTTP.EventHandler, error) {
	useCase, err := c.EventUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get event use case for event handler: %w", err)
	}
	return accountHTTP.NewEventHandler(useCase, c.Logger()), nil
}
