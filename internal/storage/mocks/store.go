// Package mocks provides mock implementations of the storage adapters for
// testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// MockStore is a mock implementation of service.Store.
type MockStore struct {
	mock.Mock
}

// Set mocks the Set method of Store.
func (m *MockStore) Set(
	ctx context.Context,
	key string,
	entry storageDomain.EncryptedEntry,
) (*storageDomain.Receipt, error) {
	args := m.Called(ctx, key, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.Receipt), args.Error(1)
}

// Get mocks the Get method of Store.
func (m *MockStore) Get(ctx context.Context, key string) (*storageDomain.EncryptedEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.EncryptedEntry), args.Error(1)
}

// Delete mocks the Delete method of Store.
func (m *MockStore) Delete(ctx context.Context, key string) (*storageDomain.Receipt, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.Receipt), args.Error(1)
}

// List mocks the List method of Store.
func (m *MockStore) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
