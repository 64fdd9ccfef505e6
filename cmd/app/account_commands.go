package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accounts/cmd/app/commands"
	"github.com/allisson/accounts/internal/app"
	"github.com/allisson/accounts/internal/config"
)

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-account",
			Usage: "Create an account, optionally already active",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "full-name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Full name of the account owner",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email address used to sign in",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password (omit to read it from stdin)",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the account can sign in without activation",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAccount(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("full-name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.Bool("active"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "revoke-token",
			Usage: "Delete an account's bearer token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "account-id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Account ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				sessionUseCase, err := container.SessionUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevokeToken(
					ctx,
					sessionUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("account-id"),
					cmd.String("format"),
				)
			},
		},
	}
}
