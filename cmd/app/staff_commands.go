package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
)

func getStaffCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-staff",
			Usage: "Create a staff account (use it to bootstrap the first ADMIN)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Login email",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Sources:  cli.EnvVars("STAFF_PASSWORD"),
					Usage:    "Initial password (8+ chars with upper, lower, digit and special)",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "USER",
					Usage:   "Role: 'ADMIN' or 'USER'",
				},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				staffUseCase, err := container.StaffUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateStaff(
					ctx,
					staffUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.CreateStaffParams{
						Name:     cmd.String("name"),
						Email:    cmd.String("email"),
						Password: cmd.String("password"),
						Role:     cmd.String("role"),
						Format:   cmd.String("format"),
					},
				)
			}),
		},
	}
}
