package service

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyService(t *testing.T) {
	service := NewKeyService()
	assert.NotNil(t, service)
	assert.IsType(t, &keyService{}, service)
}

func TestKeyService_GenerateKey(t *testing.T) {
	service := NewKeyService()

	t.Run("Success_Format", func(t *testing.T) {
		key, err := service.GenerateKey()
		require.NoError(t, err)
		assert.Len(t, key, KeySize*2)

		decoded, err := hex.DecodeString(key)
		require.NoError(t, err)
		assert.Len(t, decoded, KeySize)
	})

	t.Run("Success_Unique", func(t *testing.T) {
		seen := make(map[string]struct{}, 100)
		for range 100 {
			key, err := service.GenerateKey()
			require.NoError(t, err)
			_, dup := seen[key]
			assert.False(t, dup)
			seen[key] = struct{}{}
		}
	})
}
