// Package service implements the storage adapters. A store persists opaque
// encrypted entries by fully qualified key; it never sees key material in
// any form. Backends may be eventually consistent; nothing here retries
// reads to wait for propagation (see Waiter for the opt-in polling helper).
package service

import (
	"context"

	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// Store is the storage adapter contract.
type Store interface {
	// Set persists the entry at key, replacing any prior value. The receipt
	// is backend-dependent and may be nil; absence is not an error.
	Set(ctx context.Context, key string, entry storageDomain.EncryptedEntry) (*storageDomain.Receipt, error)

	// Get returns the current entry, or nil when the key is absent. An
	// absent key is a normal outcome, distinct from a transport failure.
	Get(ctx context.Context, key string) (*storageDomain.EncryptedEntry, error)

	// Delete removes the entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) (*storageDomain.Receipt, error)

	// List returns keys beginning with prefix. Ordering and completeness
	// are backend-defined.
	List(ctx context.Context, prefix string) ([]string, error)
}
