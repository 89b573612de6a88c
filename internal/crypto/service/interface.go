// Package service implements the cryptographic primitives used by the
// envelope coordinator: AEAD ciphers and the sealed-payload codec.
//
// Two AES-256-GCM implementations are provided (Go standard library and
// Tink). Both produce and consume the exact same wire format, 12-byte nonce
// prefix and 16-byte tag suffix, so a payload sealed by one is opened by the
// other without environment affinity.
package service

import (
	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	// The ciphertext includes the authentication tag as its suffix.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD. It fails
	// when the authentication tag does not verify.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD cipher instances for a key and algorithm tag.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Sealer is the primitive provider the envelope coordinator depends on: it
// mints per-value data keys and converts between plaintext and the portable
// sealed encoding base64(nonce || ciphertext || tag).
type Sealer interface {
	// GenerateKey produces a fresh single-use 256-bit data key.
	GenerateKey() (cryptoDomain.DataKey, error)

	// Seal encrypts plaintext under key with a fresh nonce and returns the
	// base64-encoded nonce||ciphertext||tag payload.
	Seal(plaintext []byte, key cryptoDomain.DataKey, alg cryptoDomain.Algorithm) (string, error)

	// Open is the inverse of Seal. It returns ErrMalformedCiphertext for
	// input that cannot be decoded and split, and ErrDecryptionFailed when
	// the authentication tag does not verify.
	Open(sealed string, key cryptoDomain.DataKey, alg cryptoDomain.Algorithm) ([]byte, error)
}
