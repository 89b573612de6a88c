// Package usecase implements the envelope coordinator: the sequence that
// turns a plaintext value into an encrypted entry (generate, seal, wrap,
// assemble, store) and back. It owns the ordering guarantees; the
// cryptographic primitives, the trust anchor and the storage backend are
// injected.
package usecase

import (
	"context"

	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// VaultUseCase defines the interface for envelope-encrypted key-value
// operations. All keys are user keys; the coordinator derives the fully
// qualified storage key and the trust-anchor group id from its identity.
type VaultUseCase interface {
	// Set seals plaintext under a fresh data key, wraps the key at the trust
	// anchor, and persists the resulting entry. The storage write is the last
	// step; a failure anywhere before it leaves no partial state behind.
	Set(ctx context.Context, userKey string, plaintext []byte) (*storageDomain.Receipt, error)

	// Get retrieves and decrypts the value at userKey. An absent key returns
	// found=false with no error; the trust anchor is not contacted for it.
	Get(ctx context.Context, userKey string) (plaintext []byte, found bool, err error)

	// Delete removes the entry at userKey. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, userKey string) (*storageDomain.Receipt, error)

	// List returns the user keys stored under this identity's namespace,
	// optionally narrowed by a key prefix, with the internal storage prefix
	// stripped.
	List(ctx context.Context, userPrefix string) ([]string, error)

	// KeyID returns the trust anchor's identifier for this identity's group
	// key. The id is informational; it never participates in decryption.
	KeyID(ctx context.Context) (string, error)
}
