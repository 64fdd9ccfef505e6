package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/notification"
)

// MemoryStore keeps accounts, bearer tokens and events in memory. It satisfies the
// account, token and event repository interfaces so the use cases can run end to end
// without a database.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]accountDomain.Account
	tokens   map[uuid.UUID]authDomain.BearerToken
	events   []accountDomain.Event
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[uuid.UUID]accountDomain.Account),
		tokens:   make(map[uuid.UUID]authDomain.BearerToken),
	}
}

// Accounts groups the account repository methods.
func (s *MemoryStore) Accounts() *MemoryAccountRepository { return &MemoryAccountRepository{s} }

// Tokens groups the bearer token repository methods.
func (s *MemoryStore) Tokens() *MemoryTokenRepository { return &MemoryTokenRepository{s} }

// Events groups the event repository methods.
func (s *MemoryStore) Events() *MemoryEventRepository { return &MemoryEventRepository{s} }

// WithTx runs fn directly. Writes are not rolled back on error.
func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MemoryAccountRepository is the account view of a MemoryStore.
type MemoryAccountRepository struct{ s *MemoryStore }

func (r *MemoryAccountRepository) Create(_ context.Context, account *accountDomain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.accounts {
		if existing.Email == account.Email {
			return accountDomain.ErrAccountAlreadyExists
		}
	}
	r.s.accounts[account.ID] = *account
	return nil
}

func (r *MemoryAccountRepository) UpdateDetails(_ context.Context, account *accountDomain.Account) error {
	return r.update(account.ID, func(stored *accountDomain.Account) error {
		for id, existing := range r.s.accounts {
			if id != account.ID && existing.Email == account.Email {
				return accountDomain.ErrAccountAlreadyExists
			}
		}
		stored.Email = account.Email
		stored.FirstName = account.FirstName
		stored.LastName = account.LastName
		stored.UpdatedAt = account.UpdatedAt
		return nil
	})
}

func (r *MemoryAccountRepository) SetActive(_ context.Context, accountID uuid.UUID, updatedAt time.Time) error {
	return r.update(accountID, func(stored *accountDomain.Account) error {
		stored.IsActive = true
		stored.UpdatedAt = updatedAt
		return nil
	})
}

func (r *MemoryAccountRepository) SetPasswordHash(
	_ context.Context,
	accountID uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	return r.update(accountID, func(stored *accountDomain.Account) error {
		stored.PasswordHash = passwordHash
		stored.UpdatedAt = updatedAt
		return nil
	})
}

func (r *MemoryAccountRepository) UpdateLastLogin(_ context.Context, accountID uuid.UUID, lastLoginAt time.Time) error {
	return r.update(accountID, func(stored *accountDomain.Account) error {
		stored.LastLoginAt = &lastLoginAt
		return nil
	})
}

// update applies fn to the stored account under the store lock.
func (r *MemoryAccountRepository) update(accountID uuid.UUID, fn func(stored *accountDomain.Account) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.accounts[accountID]
	if !ok {
		return accountDomain.ErrAccountNotFound
	}
	if err := fn(&stored); err != nil {
		return err
	}
	r.s.accounts[accountID] = stored
	return nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, accountID uuid.UUID) (*accountDomain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[accountID]
	if !ok {
		return nil, accountDomain.ErrAccountNotFound
	}
	return &account, nil
}

// GetByIDForUpdate is GetByID. WithTx does not isolate, so there is nothing to lock.
func (r *MemoryAccountRepository) GetByIDForUpdate(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error) {
	return r.GetByID(ctx, accountID)
}

// GetByEmailForUpdate is GetByEmail.
func (r *MemoryAccountRepository) GetByEmailForUpdate(ctx context.Context, email string) (*accountDomain.Account, error) {
	return r.GetByEmail(ctx, email)
}

func (r *MemoryAccountRepository) GetByEmail(_ context.Context, email string) (*accountDomain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, account := range r.s.accounts {
		if account.Email == email {
			return &account, nil
		}
	}
	return nil, accountDomain.ErrAccountNotFound
}

func (r *MemoryAccountRepository) ExistsByEmail(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, account := range r.s.accounts {
		if id != excludeID && account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// MemoryTokenRepository is the bearer token view of a MemoryStore.
type MemoryTokenRepository struct{ s *MemoryStore }

func (r *MemoryTokenRepository) GetOrCreate(
	_ context.Context,
	token *authDomain.BearerToken,
) (*authDomain.BearerToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.tokens[token.AccountID]
	if !ok {
		stored = *token
		r.s.tokens[token.AccountID] = stored
	}
	return &stored, nil
}

func (r *MemoryTokenRepository) GetByKey(_ context.Context, key string) (*authDomain.BearerToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, token := range r.s.tokens {
		if token.Key == key {
			return &token, nil
		}
	}
	return nil, authDomain.ErrBearerTokenNotFound
}

func (r *MemoryTokenRepository) DeleteByAccount(_ context.Context, accountID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.tokens[accountID]
	delete(r.s.tokens, accountID)
	return ok, nil
}

// MemoryEventRepository is the event log view of a MemoryStore.
type MemoryEventRepository struct{ s *MemoryStore }

func (r *MemoryEventRepository) Create(_ context.Context, event *accountDomain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.events = append(r.s.events, *event)
	return nil
}

// ListByAccount returns events newest first.
func (r *MemoryEventRepository) ListByAccount(
	_ context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*accountDomain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*accountDomain.Event
	for i := len(r.s.events) - 1; i >= 0; i-- {
		if r.s.events[i].AccountID == accountID {
			event := r.s.events[i]
			matched = append(matched, &event)
		}
	}

	if offset >= len(matched) {
		return []*accountDomain.Event{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *MemoryEventRepository) DeleteOlderThan(_ context.Context, olderThan time.Time, dryRun bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.events[:0:0]
	var removed int64
	for _, event := range r.s.events {
		if event.CreatedAt.Before(olderThan) {
			removed++
			continue
		}
		kept = append(kept, event)
	}
	if !dryRun {
		r.s.events = kept
	}
	return removed, nil
}

// RecordingNotifier keeps every notice it is asked to send.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []notification.Notice
}

// Send records notice.
func (n *RecordingNotifier) Send(_ context.Context, notice notification.Notice) error {
	if err := notice.Validate(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

// Notices returns a copy of the recorded notices in send order.
func (n *RecordingNotifier) Notices() []notification.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Notice(nil), n.notices...)
}

// Last returns the most recent notice, or false when nothing was sent.
func (n *RecordingNotifier) Last() (notification.Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return notification.Notice{}, false
	}
	return n.notices[len(n.notices)-1], true
}
