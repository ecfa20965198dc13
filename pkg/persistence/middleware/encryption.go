package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// envelopePrefix marks an encrypted value; the rest is base64(nonce|ciphertext).
const envelopePrefix = "enc:v1:"

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new values.
	ActiveKey []byte

	// FallbackKeys are old keys tried when the active key cannot decrypt,
	// which allows rotating keys without losing stored settings.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.SettingsStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts every value with AES-GCM.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != KeySize {
		return nil, fmt.Errorf("%w: active key must be %d bytes, got %d", domain.ErrInvalidInput, KeySize, len(config.ActiveKey))
	}
	for i, k := range config.FallbackKeys {
		if len(k) != KeySize {
			return nil, fmt.Errorf("%w: fallback key %d must be %d bytes, got %d", domain.ErrInvalidInput, i, KeySize, len(k))
		}
	}
	return func(next ports.SettingsStore) ports.SettingsStore {
		return &encryptionMiddleware{next: next, config: config}
	}, nil
}

// ParseKeys decodes base64 keys into an EncryptionConfig: the first key is
// active, the rest are fallbacks.
func ParseKeys(encoded []string) (EncryptionConfig, error) {
	if len(encoded) == 0 {
		return EncryptionConfig{}, fmt.Errorf("%w: no encryption key", domain.ErrInvalidInput)
	}
	keys := make([][]byte, len(encoded))
	for i, s := range encoded {
		k, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return EncryptionConfig{}, fmt.Errorf("%w: encryption key %d is not base64", domain.ErrInvalidInput, i)
		}
		keys[i] = k
	}
	return EncryptionConfig{ActiveKey: keys[0], FallbackKeys: keys[1:]}, nil
}

func (m *encryptionMiddleware) Get(ctx context.Context, key string) (string, error) {
	stored, err := m.next.Get(ctx, key)
	if err != nil {
		return "", err
	}

	// Plain values are refused: once encryption is on, every value must be sealed.
	encoded, ok := strings.CutPrefix(stored, envelopePrefix)
	if !ok {
		return "", fmt.Errorf("setting %q is missing encrypted data envelope", key)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt setting %q: %w", key, err)
	}
	return string(plainText), nil
}

func (m *encryptionMiddleware) Set(ctx context.Context, key, value string) error {
	ciphertext, err := encrypt([]byte(value), m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt setting %q: %w", key, err)
	}
	return m.next.Set(ctx, key, envelopePrefix+base64.StdEncoding.EncodeToString(ciphertext))
}

func (m *encryptionMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
