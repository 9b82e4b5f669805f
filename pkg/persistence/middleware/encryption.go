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

	"github.com/aretw0/espalier/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.EntryStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts every entry
// with AES-GCM before it reaches the wrapped store. Stored entries are
// base64 text, so any store that holds strings can hold them.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes (AES-256), got %d", i, len(k))
		}
	}
	return func(next ports.EntryStore) ports.EntryStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Entries(ctx context.Context, key string) ([]string, error) {
	sealed, err := m.next.Entries(ctx, key)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(sealed))
	for i, s := range sealed {
		ciphertext, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d of %s: failed to decode ciphertext base64: %w", i, key, err)
		}
		plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return nil, fmt.Errorf("entry %d of %s: %w", i, key, err)
		}
		out[i] = string(plain)
	}
	return out, nil
}

func (m *encryptionMiddleware) Append(ctx context.Context, key string, entries ...string) error {
	sealed := make([]string, len(entries))
	for i, e := range entries {
		ciphertext, err := encrypt([]byte(e), m.config.ActiveKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt entry: %w", err)
		}
		sealed[i] = base64.StdEncoding.EncodeToString(ciphertext)
	}
	return m.next.Append(ctx, key, sealed...)
}

func (m *encryptionMiddleware) Clear(ctx context.Context, key string) error {
	return m.next.Clear(ctx, key)
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

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, sealed, nil)
}
