// Package service implements the trust-anchor adapters. An adapter is a pure
// protocol translator: it describes what is being asked (wrap or unwrap a
// data key under a group) and leaves authorization and transport to the
// backend, either an injected signing callback or a KMS keeper. Adapters
// hold no credentials and never log key material.
package service

import (
	"context"

	anchorDomain "github.com/fastkv/fastkv-go/internal/trustanchor/domain"
)

// SignFunc executes a remote invocation on behalf of the adapter. The
// embedding application supplies it and owns the authorization mechanism
// behind it: a wallet signature, an HTTP call with a bearer credential, a
// CLI subprocess. It is a black box that may block, fail, or require user
// interaction; context cancellation is its responsibility.
type SignFunc func(
	ctx context.Context,
	envelope anchorDomain.InvocationEnvelope,
) (anchorDomain.InvocationResponse, error)

// TrustAnchor wraps and unwraps single-use data keys under a group-scoped
// policy. Implementations must never log or persist plaintext key material.
type TrustAnchor interface {
	// WrapKey asks the trust anchor to wrap the exported data key under the
	// group's policy.
	WrapKey(ctx context.Context, groupID, plaintextKeyB64 string) (anchorDomain.WrapResult, error)

	// UnwrapKey is the inverse. Fails with ErrGroupUnauthorized when the
	// caller is not authorized for the group or the wrapped key does not
	// belong to it.
	UnwrapKey(ctx context.Context, groupID, wrappedKeyB64 string) (anchorDomain.UnwrapResult, error)
}

// KeyIDLookup is the optional capability of returning a group's key id
// without performing a wrap. Adapters without it force the coordinator onto
// its throwaway-wrap fallback.
type KeyIDLookup interface {
	LookupKeyID(ctx context.Context, groupID string) (string, error)
}
