package service

import (
	"fmt"

	"github.com/google/tink/go/aead/subtle"

	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
)

// TinkAESGCMCipher implements the AEAD interface with Tink's AES-GCM
// primitive. It exists to prove the wire format carries no implementation
// affinity: Tink packs the random 12-byte nonce as a prefix and the 16-byte
// tag as a suffix, exactly like AESGCMCipher, so payloads are exchangeable
// between the two in both directions.
type TinkAESGCMCipher struct {
	aead *subtle.AESGCM
}

// NewTinkAESGCM creates a Tink-backed AES-256-GCM cipher. The key must be
// exactly 32 bytes.
func NewTinkAESGCM(key []byte) (*TinkAESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := subtle.NewAESGCM(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create tink AES-GCM: %w", err)
	}

	return &TinkAESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext with a fresh random nonce. Tink returns the
// nonce already prefixed to the ciphertext; it is split off here so the AEAD
// contract stays uniform across implementations.
func (a *TinkAESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	packed, err := a.aead.Encrypt(plaintext, aad)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	if len(packed) < cryptoDomain.NonceSize {
		return nil, nil, cryptoDomain.ErrMalformedCiphertext
	}

	return packed[cryptoDomain.NonceSize:], packed[:cryptoDomain.NonceSize], nil
}

// Decrypt verifies the authentication tag and returns the plaintext.
func (a *TinkAESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrMalformedCiphertext
	}

	packed := make([]byte, 0, len(nonce)+len(ciphertext))
	packed = append(packed, nonce...)
	packed = append(packed, ciphertext...)

	plaintext, err := a.aead.Decrypt(packed, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
