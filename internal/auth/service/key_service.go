package service

import (
	"crypto/rand"
	"encoding/hex"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// KeySize is the number of random bytes in a bearer token key.
const KeySize = 20

// keyService implements KeyService with crypto/rand.
type keyService struct{}

// GenerateKey reads KeySize random bytes and hex-encodes them.
func (k *keyService) GenerateKey() (string, error) {
	randomBytes := make([]byte, KeySize)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate bearer token key")
	}
	return hex.EncodeToString(randomBytes), nil
}

// NewKeyService creates a new KeyService.
func NewKeyService() KeyService {
	return &keyService{}
}
