// Package domain defines the records the storage adapters persist: the
// encrypted entry wire format and the inline encrypted-value string format.
package domain

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
	appvalidation "github.com/fastkv/fastkv-go/internal/validation"
)

// EncryptedEntry is the unit persisted by a storage adapter. Every field is
// safe to hand to a party the caller does not control: the ciphertext cannot
// be opened without the data key, and the wrapped key cannot be opened
// without the trust anchor. Plaintext and unwrapped keys never appear here.
type EncryptedEntry struct {
	// WrappedKey is the trust anchor's wrapped form of the per-value data
	// key, base64 encoded.
	WrappedKey string `json:"wrapped_key"`

	// Ciphertext is the sealed value: base64(12-byte nonce || ciphertext ||
	// 16-byte tag).
	Ciphertext string `json:"ciphertext"`

	// KeyID is the trust anchor's identifier for the group's key. Stable
	// per group, not secret, informational only.
	KeyID string `json:"key_id"`

	// Algorithm tags the symmetric scheme used to seal the value.
	Algorithm cryptoDomain.Algorithm `json:"algorithm"`

	// Version is the entry layout version.
	Version int `json:"v"`
}

// Validate checks the entry is structurally complete before it is persisted
// or after it is read back.
func (e EncryptedEntry) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.WrappedKey, validation.Required, appvalidation.Base64),
		validation.Field(&e.Ciphertext, validation.Required, appvalidation.Base64),
		validation.Field(&e.Algorithm, validation.Required, validation.In(
			cryptoDomain.AES256GCM,
			cryptoDomain.ChaCha20Poly1305,
		)),
		validation.Field(&e.Version, validation.Required, validation.Min(1)),
	)
	return appvalidation.WrapValidationError(err)
}

// Receipt is an opaque write acknowledgement from a storage backend, e.g. a
// transaction hash from a chain-backed store. Backends without receipts
// return nil; absence is not an error.
type Receipt struct {
	ID string
}
