package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// DataKey is a single-use 256-bit symmetric key. A fresh key is minted for
// every value that is sealed, which is what keeps nonce reuse impossible:
// no key ever sees more than one encryption.
//
// The raw bytes are plaintext-equivalent secrets. They exist in memory only
// between generation and wrapping (or between unwrapping and decryption) and
// must be zeroed afterwards.
type DataKey []byte

// NewDataKey generates a fresh 32-byte key from crypto/rand. Fails only when
// the entropy source is unavailable.
func NewDataKey() (DataKey, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate data key: %w", err)
	}
	return key, nil
}

// Export serializes the key to standard base64 for transport to the trust
// anchor. The exported form is as sensitive as the key itself.
func (k DataKey) Export() string {
	return base64.StdEncoding.EncodeToString(k)
}

// ImportDataKey is the inverse of Export. It rejects malformed base64 and
// any decoded length other than KeySize.
func ImportDataKey(encoded string) (DataKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeySize, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(raw), KeySize)
	}
	return raw, nil
}

// Zero overwrites the key material.
func (k DataKey) Zero() {
	Zero(k)
}
