package commands

import (
	"context"
	"fmt"
	"log/slog"

	vaultUsecase "github.com/fastkv/fastkv-go/internal/vault/usecase"
)

// RunDelete removes the entry at key. Deleting an absent key succeeds.
func RunDelete(
	ctx context.Context,
	vault vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	key string,
	ioTuple IOTuple,
) error {
	receipt, err := vault.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}

	logger.Info("value deleted", slog.String("key", key))

	if receipt != nil {
		_, _ = fmt.Fprintf(ioTuple.Writer, "receipt: %s\n", receipt.ID)
	}

	return nil
}
