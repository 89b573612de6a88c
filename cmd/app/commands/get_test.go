package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultMocks "github.com/fastkv/fastkv-go/internal/vault/mocks"
)

func TestRunGet(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the plaintext", func(t *testing.T) {
		vault := new(vaultMocks.MockVaultUseCase)
		vault.On("Get", ctx, "password").Return([]byte("hello world"), true, nil).Once()

		ioTuple, out := testIO("")
		err := RunGet(ctx, vault, testLogger(), "password", ioTuple)
		require.NoError(t, err)
		assert.Equal(t, "hello world", out.String())
		vault.AssertExpectations(t)
	})

	t.Run("absent key is an error at the CLI boundary", func(t *testing.T) {
		vault := new(vaultMocks.MockVaultUseCase)
		vault.On("Get", ctx, "missing").Return(nil, false, nil).Once()

		ioTuple, out := testIO("")
		err := RunGet(ctx, vault, testLogger(), "missing", ioTuple)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.Empty(t, out.String())
	})
}
