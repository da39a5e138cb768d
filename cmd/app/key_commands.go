package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-encryption-key",
			Usage: "Generate a random 32-byte encryption key (hex)",
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				return commands.RunGenerateEncryptionKey(container.Logger(), commands.DefaultIO().Writer)
			}),
		},
		{
			Name:  "wrap-encryption-key",
			Usage: "Wrap an encryption key with a KMS key for ENCRYPTION_KEY_WRAPPED",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kms-uri",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "KMS key URI (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://)",
				},
				&cli.StringFlag{
					Name:    "key",
					Aliases: []string{"k"},
					Sources: cli.EnvVars("ENCRYPTION_KEY"),
					Usage:   "Hex encoded key to wrap (omit to generate a new one)",
				},
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				return commands.RunWrapEncryptionKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-uri"),
					cmd.String("key"),
				)
			}),
		},
	}
}
