package commands

import (
	"context"
	"fmt"
	"log/slog"

	storageService "github.com/fastkv/fastkv-go/internal/storage/service"
	vaultDomain "github.com/fastkv/fastkv-go/internal/vault/domain"
)

// RunWait polls the store until the key becomes visible, for scripting
// against eventually consistent backends: write, then wait, then read.
func RunWait(
	ctx context.Context,
	waiter *storageService.Waiter,
	identity vaultDomain.Identity,
	logger *slog.Logger,
	key string,
	ioTuple IOTuple,
) error {
	if err := vaultDomain.ValidateUserKey(key); err != nil {
		return err
	}

	entry, err := waiter.WaitForKey(ctx, identity.FullKey(key))
	if err != nil {
		return fmt.Errorf("waiting for %q: %w", key, err)
	}

	logger.Info("key visible", slog.String("key", key), slog.String("key_id", entry.KeyID))

	_, _ = fmt.Fprintf(ioTuple.Writer, "%s is visible (key id %s)\n", key, entry.KeyID)
	return nil
}
