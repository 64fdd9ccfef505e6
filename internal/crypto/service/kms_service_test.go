package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"
)

func newLocalKeyURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func encryptWith(t *testing.T, keyURI string, plaintext []byte) string {
	t.Helper()
	keeper, err := secrets.OpenKeeper(context.Background(), keyURI)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, keeper.Close())
	}()

	ciphertext, err := keeper.Encrypt(context.Background(), plaintext)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(ciphertext)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, newLocalKeyURI(t))
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok)
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Nil(t, keeper)
		assert.ErrorContains(t, err, "failed to open KMS keeper")
	})
}

func TestKMSService_DecryptSecret(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()
	tokenSecret := []byte("0123456789abcdef0123456789abcdef")

	t.Run("Success", func(t *testing.T) {
		keyURI := newLocalKeyURI(t)
		ciphertext := encryptWith(t, keyURI, tokenSecret)

		plaintext, err := kmsService.DecryptSecret(ctx, keyURI, "  "+ciphertext+"\n")
		require.NoError(t, err)
		assert.Equal(t, tokenSecret, plaintext)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		ciphertext := encryptWith(t, newLocalKeyURI(t), tokenSecret)

		_, err := kmsService.DecryptSecret(ctx, newLocalKeyURI(t), ciphertext)
		assert.ErrorContains(t, err, "failed to decrypt secret")
	})

	t.Run("Error_NotBase64", func(t *testing.T) {
		_, err := kmsService.DecryptSecret(ctx, newLocalKeyURI(t), "not base64!")
		assert.ErrorContains(t, err, "not valid base64")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		_, err := kmsService.DecryptSecret(ctx, "invalid://uri", base64.StdEncoding.EncodeToString([]byte("x")))
		assert.ErrorContains(t, err, "failed to open KMS keeper")
	})
}
