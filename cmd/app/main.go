// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fastkv/fastkv-go/cmd/app/commands"
	"github.com/fastkv/fastkv-go/internal/app"
	"github.com/fastkv/fastkv-go/internal/config"
	vaultDomain "github.com/fastkv/fastkv-go/internal/vault/domain"
	vaultUsecase "github.com/fastkv/fastkv-go/internal/vault/usecase"
)

// withVault builds the container, resolves the vault use case and hands it
// to the action, shutting everything down afterwards.
func withVault(
	ctx context.Context,
	action func(ctx context.Context, vault vaultUsecase.VaultUseCase, logger *slog.Logger) error,
) error {
	container := app.NewContainer(config.Load())
	logger := container.Logger()
	defer commands.CloseContainer(container, logger)

	vault, err := container.VaultUseCase()
	if err != nil {
		return fmt.Errorf("failed to build vault: %w", err)
	}

	return action(ctx, vault, logger)
}

func main() {
	cmd := &cli.Command{
		Name:    "fastkv",
		Usage:   "Envelope-encrypted key-value storage client",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Encrypt a value and store it under a key",
				ArgsUsage: "<key> <value>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("usage: set <key> <value> (use \"-\" to read the value from stdin)")
					}
					return withVault(ctx, func(ctx context.Context, vault vaultUsecase.VaultUseCase, logger *slog.Logger) error {
						return commands.RunSet(ctx, vault, logger, cmd.Args().Get(0), cmd.Args().Get(1), commands.DefaultIO())
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Retrieve and decrypt the value at a key",
				ArgsUsage: "<key>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("usage: get <key>")
					}
					return withVault(ctx, func(ctx context.Context, vault vaultUsecase.VaultUseCase, logger *slog.Logger) error {
						return commands.RunGet(ctx, vault, logger, cmd.Args().Get(0), commands.DefaultIO())
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Remove the entry at a key",
				ArgsUsage: "<key>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("usage: delete <key>")
					}
					return withVault(ctx, func(ctx context.Context, vault vaultUsecase.VaultUseCase, logger *slog.Logger) error {
						return commands.RunDelete(ctx, vault, logger, cmd.Args().Get(0), commands.DefaultIO())
					})
				},
			},
			{
				Name:  "list",
				Usage: "List stored keys, optionally with decrypted values",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "prefix",
						Aliases: []string{"p"},
						Value:   "",
						Usage:   "Only list keys beginning with this prefix",
					},
					&cli.BoolFlag{
						Name:    "values",
						Aliases: []string{"v"},
						Value:   false,
						Usage:   "Fetch and decrypt each value",
					},
					&cli.IntFlag{
						Name:    "concurrency",
						Aliases: []string{"c"},
						Value:   4,
						Usage:   "Concurrent value fetches when --values is set",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withVault(ctx, func(ctx context.Context, vault vaultUsecase.VaultUseCase, logger *slog.Logger) error {
						return commands.RunList(
							ctx,
							vault,
							logger,
							cmd.String("prefix"),
							cmd.Bool("values"),
							cmd.Int("concurrency"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "key-id",
				Usage: "Print the trust anchor's identifier for the group key",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withVault(ctx, func(ctx context.Context, vault vaultUsecase.VaultUseCase, logger *slog.Logger) error {
						return commands.RunKeyID(ctx, vault, logger, commands.DefaultIO())
					})
				},
			},
			{
				Name:      "wait",
				Usage:     "Poll the store until a key becomes visible",
				ArgsUsage: "<key>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("usage: wait <key>")
					}

					container := app.NewContainer(config.Load())
					logger := container.Logger()
					defer commands.CloseContainer(container, logger)

					waiter, err := container.Waiter()
					if err != nil {
						return fmt.Errorf("failed to build waiter: %w", err)
					}

					cfg := container.Config()
					identity := vaultDomain.Identity{
						AccountID:   cfg.AccountID,
						Namespace:   cfg.Namespace,
						GroupSuffix: cfg.GroupSuffix,
					}
					if err := identity.Validate(); err != nil {
						return err
					}

					return commands.RunWait(ctx, waiter, identity, logger, cmd.Args().Get(0), commands.DefaultIO())
				},
			},
			{
				Name:  "gen-keeper-key",
				Usage: "Generate a base64key:// URI for the local keeper anchor",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenKeeperKey(commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
