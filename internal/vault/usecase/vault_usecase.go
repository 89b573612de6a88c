package usecase

import (
	"context"
	"sync/atomic"

	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
	cryptoService "github.com/fastkv/fastkv-go/internal/crypto/service"
	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
	storageService "github.com/fastkv/fastkv-go/internal/storage/service"
	anchorService "github.com/fastkv/fastkv-go/internal/trustanchor/service"
	vaultDomain "github.com/fastkv/fastkv-go/internal/vault/domain"
)

// vaultUseCase implements the VaultUseCase interface.
type vaultUseCase struct {
	identity  vaultDomain.Identity
	sealer    cryptoService.Sealer
	anchor    anchorService.TrustAnchor
	store     storageService.Store
	algorithm cryptoDomain.Algorithm

	// keyID caches the group key id once learned, from a Set, a lookup or a
	// throwaway wrap. The id is stable per group, so a concurrent lost update
	// is idempotent; the cache is scoped to this instance.
	keyID atomic.Value
}

// Set seals plaintext under a fresh data key, wraps the key under the group's
// policy, assembles the entry and persists it.
func (v *vaultUseCase) Set(
	ctx context.Context,
	userKey string,
	plaintext []byte,
) (*storageDomain.Receipt, error) {
	if err := vaultDomain.ValidateUserKey(userKey); err != nil {
		return nil, err
	}

	key, err := v.sealer.GenerateKey()
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	sealed, err := v.sealer.Seal(plaintext, key, v.algorithm)
	if err != nil {
		return nil, err
	}

	wrapped, err := v.anchor.WrapKey(ctx, v.identity.GroupID(), key.Export())
	if err != nil {
		return nil, err
	}

	entry := storageDomain.EncryptedEntry{
		WrappedKey: wrapped.WrappedKeyB64,
		Ciphertext: sealed,
		KeyID:      wrapped.KeyID,
		Algorithm:  v.algorithm,
		Version:    cryptoDomain.EntryVersion,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	v.cacheKeyID(wrapped.KeyID)

	return v.store.Set(ctx, v.identity.FullKey(userKey), entry)
}

// Get retrieves the entry at userKey, unwraps its data key and opens the
// ciphertext. An absent key short-circuits before any trust-anchor call.
func (v *vaultUseCase) Get(ctx context.Context, userKey string) ([]byte, bool, error) {
	if err := vaultDomain.ValidateUserKey(userKey); err != nil {
		return nil, false, err
	}

	entry, err := v.store.Get(ctx, v.identity.FullKey(userKey))
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		return nil, false, nil
	}
	if err := entry.Validate(); err != nil {
		return nil, false, err
	}

	unwrapped, err := v.anchor.UnwrapKey(ctx, v.identity.GroupID(), entry.WrappedKey)
	if err != nil {
		return nil, false, err
	}

	key, err := cryptoDomain.ImportDataKey(unwrapped.PlaintextKeyB64)
	if err != nil {
		return nil, false, err
	}
	defer key.Zero()

	plaintext, err := v.sealer.Open(entry.Ciphertext, key, entry.Algorithm)
	if err != nil {
		return nil, false, err
	}

	return plaintext, true, nil
}

// Delete removes the entry at userKey.
func (v *vaultUseCase) Delete(ctx context.Context, userKey string) (*storageDomain.Receipt, error) {
	if err := vaultDomain.ValidateUserKey(userKey); err != nil {
		return nil, err
	}

	return v.store.Delete(ctx, v.identity.FullKey(userKey))
}

// List returns the user keys under this identity's namespace, stripped of
// the internal storage prefix.
func (v *vaultUseCase) List(ctx context.Context, userPrefix string) ([]string, error) {
	keys, err := v.store.List(ctx, v.identity.Prefix()+userPrefix)
	if err != nil {
		return nil, err
	}

	return v.identity.StripPrefix(keys), nil
}

// KeyID returns the group's key id, from the cache, the anchor's lookup
// capability, or a throwaway wrap of a fresh key that is discarded
// immediately.
func (v *vaultUseCase) KeyID(ctx context.Context) (string, error) {
	if cached, ok := v.keyID.Load().(string); ok && cached != "" {
		return cached, nil
	}

	if lookup, ok := v.anchor.(anchorService.KeyIDLookup); ok {
		keyID, err := lookup.LookupKeyID(ctx, v.identity.GroupID())
		if err != nil {
			return "", err
		}
		v.cacheKeyID(keyID)
		return keyID, nil
	}

	key, err := v.sealer.GenerateKey()
	if err != nil {
		return "", err
	}
	defer key.Zero()

	wrapped, err := v.anchor.WrapKey(ctx, v.identity.GroupID(), key.Export())
	if err != nil {
		return "", err
	}

	v.cacheKeyID(wrapped.KeyID)
	return wrapped.KeyID, nil
}

// cacheKeyID remembers a learned key id. Empty ids are never cached.
func (v *vaultUseCase) cacheKeyID(keyID string) {
	if keyID != "" {
		v.keyID.Store(keyID)
	}
}

// NewVaultUseCase creates a vault use case instance with the provided
// dependencies. The identity is validated once here; every later operation
// derives its names from it without re-checking.
func NewVaultUseCase(
	identity vaultDomain.Identity,
	sealer cryptoService.Sealer,
	anchor anchorService.TrustAnchor,
	store storageService.Store,
	algorithm cryptoDomain.Algorithm,
) (VaultUseCase, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	return &vaultUseCase{
		identity:  identity,
		sealer:    sealer,
		anchor:    anchor,
		store:     store,
		algorithm: algorithm,
	}, nil
}
