// Package mocks provides mock implementations of the trust-anchor adapters
// for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	anchorDomain "github.com/fastkv/fastkv-go/internal/trustanchor/domain"
)

// MockTrustAnchor is a mock implementation of service.TrustAnchor.
type MockTrustAnchor struct {
	mock.Mock
}

// WrapKey mocks the WrapKey method of TrustAnchor.
func (m *MockTrustAnchor) WrapKey(
	ctx context.Context,
	groupID, plaintextKeyB64 string,
) (anchorDomain.WrapResult, error) {
	args := m.Called(ctx, groupID, plaintextKeyB64)
	return args.Get(0).(anchorDomain.WrapResult), args.Error(1)
}

// UnwrapKey mocks the UnwrapKey method of TrustAnchor.
func (m *MockTrustAnchor) UnwrapKey(
	ctx context.Context,
	groupID, wrappedKeyB64 string,
) (anchorDomain.UnwrapResult, error) {
	args := m.Called(ctx, groupID, wrappedKeyB64)
	return args.Get(0).(anchorDomain.UnwrapResult), args.Error(1)
}

// MockTrustAnchorWithLookup is a MockTrustAnchor that also implements the
// optional KeyIDLookup capability.
type MockTrustAnchorWithLookup struct {
	MockTrustAnchor
}

// LookupKeyID mocks the LookupKeyID method of KeyIDLookup.
func (m *MockTrustAnchorWithLookup) LookupKeyID(ctx context.Context, groupID string) (string, error) {
	args := m.Called(ctx, groupID)
	return args.String(0), args.Error(1)
}
