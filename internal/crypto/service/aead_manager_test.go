package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
)

func TestNewAEADManager(t *testing.T) {
	manager := NewAEADManager(StdBackend)
	assert.NotNil(t, manager)

	t.Run("empty backend defaults to std", func(t *testing.T) {
		manager := NewAEADManager("")
		key := make([]byte, 32)
		cipher, err := manager.CreateCipher(key, cryptoDomain.AES256GCM)
		require.NoError(t, err)
		_, ok := cipher.(*AESGCMCipher)
		assert.True(t, ok, "cipher should be of type *AESGCMCipher")
	})
}

func TestAEADManagerService_CreateCipher(t *testing.T) {
	validKey := make([]byte, 32)
	_, err := rand.Read(validKey)
	require.NoError(t, err)

	t.Run("create std AES-GCM cipher", func(t *testing.T) {
		cipher, err := NewAEADManager(StdBackend).CreateCipher(validKey, cryptoDomain.AES256GCM)
		require.NoError(t, err)

		_, ok := cipher.(*AESGCMCipher)
		assert.True(t, ok, "cipher should be of type *AESGCMCipher")
	})

	t.Run("create tink AES-GCM cipher", func(t *testing.T) {
		cipher, err := NewAEADManager(TinkBackend).CreateCipher(validKey, cryptoDomain.AES256GCM)
		require.NoError(t, err)

		_, ok := cipher.(*TinkAESGCMCipher)
		assert.True(t, ok, "cipher should be of type *TinkAESGCMCipher")
	})

	t.Run("create ChaCha20-Poly1305 cipher", func(t *testing.T) {
		cipher, err := NewAEADManager(StdBackend).CreateCipher(validKey, cryptoDomain.ChaCha20Poly1305)
		require.NoError(t, err)

		_, ok := cipher.(*ChaCha20Poly1305Cipher)
		assert.True(t, ok, "cipher should be of type *ChaCha20Poly1305Cipher")
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := NewAEADManager(StdBackend).CreateCipher(validKey, cryptoDomain.Algorithm("unsupported"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})

	t.Run("invalid key sizes", func(t *testing.T) {
		for _, size := range []int{0, 16, 31, 33, 64} {
			_, err := NewAEADManager(StdBackend).CreateCipher(make([]byte, size), cryptoDomain.AES256GCM)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "size %d", size)
		}
	})

	t.Run("nil key", func(t *testing.T) {
		_, err := NewAEADManager(StdBackend).CreateCipher(nil, cryptoDomain.AES256GCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestAEADRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	ciphers := map[string]func() (AEAD, error){
		"std aes-gcm":       func() (AEAD, error) { return NewAESGCM(key) },
		"tink aes-gcm":      func() (AEAD, error) { return NewTinkAESGCM(key) },
		"chacha20-poly1305": func() (AEAD, error) { return NewChaCha20Poly1305(key) },
	}

	for name, newCipher := range ciphers {
		t.Run(name, func(t *testing.T) {
			cipher, err := newCipher()
			require.NoError(t, err)

			plaintext := []byte("secret message")
			aad := []byte("context")

			ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
			require.NoError(t, err)
			assert.Len(t, nonce, cryptoDomain.NonceSize)
			assert.Len(t, ciphertext, len(plaintext)+cryptoDomain.TagSize)

			decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)

			t.Run("wrong aad fails", func(t *testing.T) {
				_, err := cipher.Decrypt(ciphertext, nonce, []byte("other"))
				assert.Error(t, err)
			})

			t.Run("tampered ciphertext fails", func(t *testing.T) {
				tampered := append([]byte(nil), ciphertext...)
				tampered[0] ^= 0x01
				_, err := cipher.Decrypt(tampered, nonce, aad)
				assert.Error(t, err)
			})
		})
	}
}

// A payload encrypted by one AES-GCM implementation must decrypt with the
// other, in both directions, given the same key.
func TestAESGCMCrossImplementationCompatibility(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	std, err := NewAESGCM(key)
	require.NoError(t, err)
	tink, err := NewTinkAESGCM(key)
	require.NoError(t, err)

	plaintext := []byte("same bytes on every platform")

	t.Run("std encrypts, tink decrypts", func(t *testing.T) {
		ciphertext, nonce, err := std.Encrypt(plaintext, nil)
		require.NoError(t, err)

		decrypted, err := tink.Decrypt(ciphertext, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("tink encrypts, std decrypts", func(t *testing.T) {
		ciphertext, nonce, err := tink.Encrypt(plaintext, nil)
		require.NoError(t, err)

		decrypted, err := std.Decrypt(ciphertext, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})
}
