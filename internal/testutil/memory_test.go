package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/notification"
)

func TestMemoryStore_Accounts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Accounts()

	account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), Email: "ethan@example.com"}
	require.NoError(t, repo.Create(ctx, account))
	assert.ErrorIs(t, repo.Create(ctx, &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), Email: account.Email}),
		accountDomain.ErrAccountAlreadyExists)

	found, err := repo.GetByEmail(ctx, "ethan@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	found.FirstName = "Changed"
	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.FirstName, "returned accounts must be copies")

	exists, err := repo.ExistsByEmail(ctx, "ethan@example.com", account.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, accountDomain.ErrAccountNotFound)
}

func TestMemoryStore_AccountWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Accounts()
	now := time.Now().UTC()

	account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), Email: "ethan@example.com", PasswordHash: "old"}
	other := &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), Email: "other@example.com"}
	require.NoError(t, repo.Create(ctx, account))
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.SetPasswordHash(ctx, account.ID, "new", now))
	require.NoError(t, repo.SetActive(ctx, account.ID, now))
	require.NoError(t, repo.UpdateLastLogin(ctx, account.ID, now))

	stale := *account
	stale.FirstName = "Ethan"
	require.NoError(t, repo.UpdateDetails(ctx, &stale))

	stored, err := repo.GetByIDForUpdate(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.PasswordHash, "details writes must not touch the password hash")
	assert.True(t, stored.IsActive)
	assert.Equal(t, "Ethan", stored.FirstName)
	require.NotNil(t, stored.LastLoginAt)

	stale.Email = other.Email
	assert.ErrorIs(t, repo.UpdateDetails(ctx, &stale), accountDomain.ErrAccountAlreadyExists)
	assert.ErrorIs(t, repo.SetActive(ctx, uuid.Must(uuid.NewV7()), now), accountDomain.ErrAccountNotFound)

	locked, err := repo.GetByEmailForUpdate(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, other.ID, locked.ID)
}

func TestMemoryStore_Tokens(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Tokens()
	accountID := uuid.Must(uuid.NewV7())

	first, err := repo.GetOrCreate(ctx, &authDomain.BearerToken{Key: "first", AccountID: accountID})
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, &authDomain.BearerToken{Key: "second", AccountID: accountID})
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)

	deleted, err := repo.DeleteByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByKey(ctx, "first")
	assert.ErrorIs(t, err, authDomain.ErrBearerTokenNotFound)
}

func TestMemoryStore_Events(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Events()
	accountID := uuid.Must(uuid.NewV7())

	old := accountDomain.NewEvent(accountDomain.EventSignedUp, accountID, nil)
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	recent := accountDomain.NewEvent(accountDomain.EventActivated, accountID, nil)
	require.NoError(t, repo.Create(ctx, &old))
	require.NoError(t, repo.Create(ctx, &recent))

	events, err := repo.ListByAccount(ctx, accountID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, accountDomain.EventActivated, events[0].Type)

	events, err = repo.ListByAccount(ctx, accountID, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, events)

	removed, err := repo.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour), true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = repo.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	events, err = repo.ListByAccount(ctx, accountID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecordingNotifier(t *testing.T) {
	n := &RecordingNotifier{}

	_, ok := n.Last()
	assert.False(t, ok)

	assert.Error(t, n.Send(context.Background(), notification.Notice{Kind: notification.KindActivation}))

	notice := notification.Notice{Kind: notification.KindActivation, Recipients: []string{"ethan@example.com"}}
	require.NoError(t, n.Send(context.Background(), notice))

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, notice, last)
	assert.Len(t, n.Notices(), 1)
}
