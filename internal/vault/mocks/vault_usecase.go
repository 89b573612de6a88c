// Package mocks provides mock implementations of the vault use case for
// testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// MockVaultUseCase is a mock implementation of usecase.VaultUseCase.
type MockVaultUseCase struct {
	mock.Mock
}

// Set mocks the Set method of VaultUseCase.
func (m *MockVaultUseCase) Set(
	ctx context.Context,
	userKey string,
	plaintext []byte,
) (*storageDomain.Receipt, error) {
	args := m.Called(ctx, userKey, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.Receipt), args.Error(1)
}

// Get mocks the Get method of VaultUseCase.
func (m *MockVaultUseCase) Get(ctx context.Context, userKey string) ([]byte, bool, error) {
	args := m.Called(ctx, userKey)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

// Delete mocks the Delete method of VaultUseCase.
func (m *MockVaultUseCase) Delete(ctx context.Context, userKey string) (*storageDomain.Receipt, error) {
	args := m.Called(ctx, userKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.Receipt), args.Error(1)
}

// List mocks the List method of VaultUseCase.
func (m *MockVaultUseCase) List(ctx context.Context, userPrefix string) ([]string, error) {
	args := m.Called(ctx, userPrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// KeyID mocks the KeyID method of VaultUseCase.
func (m *MockVaultUseCase) KeyID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
