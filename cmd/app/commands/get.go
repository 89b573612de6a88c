package commands

import (
	"context"
	"fmt"
	"log/slog"

	vaultUsecase "github.com/fastkv/fastkv-go/internal/vault/usecase"
)

// RunGet retrieves and decrypts the value at key, writing the plaintext to
// the writer. An absent key is reported as an error at the CLI boundary even
// though the library treats it as a normal outcome.
func RunGet(
	ctx context.Context,
	vault vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	key string,
	ioTuple IOTuple,
) error {
	plaintext, found, err := vault.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to get %q: %w", key, err)
	}
	if !found {
		return fmt.Errorf("key %q not found", key)
	}

	logger.Debug("value retrieved", slog.String("key", key))

	_, _ = ioTuple.Writer.Write(plaintext)
	return nil
}
