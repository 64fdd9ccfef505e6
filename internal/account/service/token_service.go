package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/allisson/accounts/internal/account/domain"
	apperrors "github.com/allisson/accounts/internal/errors"
)

const (
	// MinTokenSecretLength is the smallest accepted signing secret, in bytes.
	MinTokenSecretLength = 32

	tokenMACLength = 20
	tokenKeyLength = 32
)

// TokenConfig configures the activation/reset token service.
type TokenConfig struct {
	Secret     []byte
	Expiration time.Duration
	BucketSize time.Duration
}

// tokenService implements TokenService with HMAC-SHA256 over the account state and a
// coarse time bucket. Each purpose signs with its own HKDF-derived key.
type tokenService struct {
	keys       map[domain.TokenPurpose][]byte
	bucketSize time.Duration
	maxAge     int64
	now        func() time.Time
}

// NewTokenService derives the per-purpose keys from cfg.Secret.
func NewTokenService(cfg TokenConfig) (TokenService, error) {
	return newTokenService(cfg, time.Now)
}

func newTokenService(cfg TokenConfig, now func() time.Time) (*tokenService, error) {
	if len(cfg.Secret) < MinTokenSecretLength {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	if cfg.BucketSize < time.Second {
		return nil, errors.New("token bucket size must be at least one second")
	}
	if cfg.Expiration < cfg.BucketSize {
		return nil, errors.New("token expiration must not be shorter than the bucket size")
	}

	keys := make(map[domain.TokenPurpose][]byte, 2)
	for _, purpose := range []domain.TokenPurpose{domain.PurposeActivation, domain.PurposePasswordReset} {
		key := make([]byte, tokenKeyLength)
		r := hkdf.New(sha256.New, cfg.Secret, nil, []byte("accounts/"+string(purpose)))
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, apperrors.Wrap(err, "failed to derive token key")
		}
		keys[purpose] = key
	}

	// Round up so a token stays valid for at least the configured expiration.
	maxAge := int64((cfg.Expiration + cfg.BucketSize - 1) / cfg.BucketSize)

	return &tokenService{
		keys:       keys,
		bucketSize: cfg.BucketSize,
		maxAge:     maxAge,
		now:        now,
	}, nil
}

// Issue returns "<bucket base36>-<hex mac>".
func (s *tokenService) Issue(account *domain.Account, purpose domain.TokenPurpose) (string, error) {
	if account == nil {
		return "", errors.New("account is required")
	}

	bucket := s.currentBucket()
	mac, ok := s.sign(account, purpose, bucket)
	if !ok {
		return "", errors.New("unknown token purpose: " + string(purpose))
	}

	return strconv.FormatInt(bucket, 36) + "-" + hex.EncodeToString(mac), nil
}

// Validate rejects malformed tokens, tokens from the future and tokens older than
// the expiry window before comparing the MAC.
func (s *tokenService) Validate(account *domain.Account, purpose domain.TokenPurpose, token string) bool {
	if account == nil {
		return false
	}

	bucketPart, macPart, found := strings.Cut(token, "-")
	if !found || bucketPart == "" || len(macPart) != tokenMACLength*2 {
		return false
	}

	bucket, err := strconv.ParseInt(bucketPart, 36, 64)
	if err != nil || bucket < 0 {
		return false
	}

	current := s.currentBucket()
	if bucket > current || current-bucket > s.maxAge {
		return false
	}

	given, err := hex.DecodeString(macPart)
	if err != nil {
		return false
	}

	expected, ok := s.sign(account, purpose, bucket)
	if !ok {
		return false
	}
	return hmac.Equal(given, expected)
}

func (s *tokenService) currentBucket() int64 {
	return s.now().Unix() / int64(s.bucketSize/time.Second)
}

func (s *tokenService) sign(account *domain.Account, purpose domain.TokenPurpose, bucket int64) ([]byte, bool) {
	key, ok := s.keys[purpose]
	if !ok {
		return nil, false
	}
	fingerprint, ok := purpose.Fingerprint(account)
	if !ok {
		return nil, false
	}

	var bucketBytes [8]byte
	binary.BigEndian.PutUint64(bucketBytes[:], uint64(bucket))

	h := hmac.New(sha256.New, key)
	h.Write([]byte(purpose))
	h.Write([]byte{0})
	h.Write(account.ID[:])
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(bucketBytes[:])
	return h.Sum(nil)[:tokenMACLength], true
}
