package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
	anchorDomain "github.com/fastkv/fastkv-go/internal/trustanchor/domain"

	// Register the KMS provider drivers usable as keeper backends.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Keeper is the subset of gocloud.dev's *secrets.Keeper the anchor needs.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KeeperAnchor implements TrustAnchor on top of a KMS keeper. It is the
// deployment mode without a TEE: data keys are wrapped by a cloud KMS
// (or the localsecrets keeper for development) instead of the OutLayer key
// manager. One keeper key protects all groups; the per-group key id is a
// deterministic derivation kept for bookkeeping compatibility.
type KeeperAnchor struct {
	keeper Keeper
}

// NewKeeperAnchor creates a KeeperAnchor around an already opened keeper.
func NewKeeperAnchor(keeper Keeper) *KeeperAnchor {
	return &KeeperAnchor{keeper: keeper}
}

// OpenKeeperAnchor opens the keeper for the given key URI and wraps it in an
// anchor. Supported schemes: awskms://, azurekeyvault://, gcpkms://,
// hashivault://, base64key:// (local development only).
func OpenKeeperAnchor(ctx context.Context, keyURI string) (*KeeperAnchor, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open keeper: %w", err)
	}
	return NewKeeperAnchor(keeper), nil
}

// WrapKey encrypts the exported data key with the keeper. The plaintext key
// bytes are zeroed before returning.
func (a *KeeperAnchor) WrapKey(
	ctx context.Context,
	groupID, plaintextKeyB64 string,
) (anchorDomain.WrapResult, error) {
	raw, err := cryptoDomain.ImportDataKey(plaintextKeyB64)
	if err != nil {
		return anchorDomain.WrapResult{}, err
	}
	defer raw.Zero()

	wrapped, err := a.keeper.Encrypt(ctx, raw)
	if err != nil {
		return anchorDomain.WrapResult{}, fmt.Errorf("%w: %v", anchorDomain.ErrAnchorFailure, err)
	}

	return anchorDomain.WrapResult{
		WrappedKeyB64: base64.StdEncoding.EncodeToString(wrapped),
		KeyID:         KeyIDForGroup(groupID),
	}, nil
}

// UnwrapKey decrypts a previously wrapped data key. A keeper decryption
// failure means the wrapped key does not belong to this keeper's scope and
// surfaces as ErrGroupUnauthorized.
func (a *KeeperAnchor) UnwrapKey(
	ctx context.Context,
	groupID, wrappedKeyB64 string,
) (anchorDomain.UnwrapResult, error) {
	wrapped, err := base64.StdEncoding.DecodeString(wrappedKeyB64)
	if err != nil {
		return anchorDomain.UnwrapResult{}, fmt.Errorf(
			"%w: malformed wrapped key: %v", anchorDomain.ErrAnchorFailure, err,
		)
	}

	raw, err := a.keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return anchorDomain.UnwrapResult{}, fmt.Errorf(
			"%w: %v", anchorDomain.ErrGroupUnauthorized, err,
		)
	}
	defer cryptoDomain.Zero(raw)

	return anchorDomain.UnwrapResult{
		PlaintextKeyB64: base64.StdEncoding.EncodeToString(raw),
		KeyID:           KeyIDForGroup(groupID),
	}, nil
}

// LookupKeyID returns the deterministic per-group key id. No remote call is
// involved for this anchor.
func (a *KeeperAnchor) LookupKeyID(_ context.Context, groupID string) (string, error) {
	return KeyIDForGroup(groupID), nil
}

// Close releases the underlying keeper.
func (a *KeeperAnchor) Close() error {
	return a.keeper.Close()
}

// KeyIDForGroup derives a stable key id from the group id: the first 8 bytes
// of sha256(group_id || "key_id_v1"), hex encoded. Matches the derivation
// used by the OutLayer key manager, so records are interchangeable between
// anchor modes at the bookkeeping level.
func KeyIDForGroup(groupID string) string {
	h := sha256.New()
	h.Write([]byte(groupID))
	h.Write([]byte("key_id_v1"))
	return hex.EncodeToString(h.Sum(nil)[:8])
}
