package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	vaultUsecase "github.com/fastkv/fastkv-go/internal/vault/usecase"
)

// RunSet encrypts a value and stores it under the given key. When value is
// "-" the plaintext is read from the reader instead, so secrets do not have
// to appear in shell history or process listings.
func RunSet(
	ctx context.Context,
	vault vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	key string,
	value string,
	ioTuple IOTuple,
) error {
	plaintext := []byte(value)
	if value == "-" {
		var err error
		plaintext, err = io.ReadAll(ioTuple.Reader)
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
	}

	receipt, err := vault.Set(ctx, key, plaintext)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}

	logger.Info("value stored", slog.String("key", key))

	if receipt != nil {
		_, _ = fmt.Fprintf(ioTuple.Writer, "receipt: %s\n", receipt.ID)
	}

	return nil
}
