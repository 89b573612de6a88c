package commands

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	vaultUsecase "github.com/fastkv/fastkv-go/internal/vault/usecase"
)

// RunList prints the keys under the identity's namespace, optionally
// narrowed by prefix. With withValues set, each value is fetched and
// decrypted concurrently, bounded by concurrency.
func RunList(
	ctx context.Context,
	vault vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	prefix string,
	withValues bool,
	concurrency int,
	ioTuple IOTuple,
) error {
	keys, err := vault.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	logger.Debug("keys listed", slog.String("prefix", prefix), slog.Int("count", len(keys)))

	if !withValues {
		for _, key := range keys {
			_, _ = fmt.Fprintln(ioTuple.Writer, key)
		}
		return nil
	}

	if concurrency < 1 {
		concurrency = 1
	}

	values := make([][]byte, len(keys))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, key := range keys {
		group.Go(func() error {
			plaintext, found, err := vault.Get(groupCtx, key)
			if err != nil {
				return fmt.Errorf("failed to get %q: %w", key, err)
			}
			// A key deleted between list and get is skipped, not an error.
			if found {
				values[i] = plaintext
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for i, key := range keys {
		if values[i] == nil {
			continue
		}
		_, _ = fmt.Fprintf(ioTuple.Writer, "%s\t%s\n", key, values[i])
	}

	return nil
}
