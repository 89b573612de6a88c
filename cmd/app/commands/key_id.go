package commands

import (
	"context"
	"fmt"
	"log/slog"

	vaultUsecase "github.com/fastkv/fastkv-go/internal/vault/usecase"
)

// RunKeyID prints the trust anchor's identifier for the configured group
// key. The id is informational bookkeeping; it plays no role in decryption.
func RunKeyID(
	ctx context.Context,
	vault vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
) error {
	keyID, err := vault.KeyID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve key id: %w", err)
	}

	logger.Debug("key id resolved", slog.String("key_id", keyID))

	_, _ = fmt.Fprintln(ioTuple.Writer, keyID)
	return nil
}
