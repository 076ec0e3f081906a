package main

import (
	"context"
	"fmt"
	"os"

	"lace-store/internal/config"
	"lace-store/internal/logger"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "storectl:", err)
		os.Exit(1)
	}
}

// app carries what the subcommands share once the env file is loaded
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newApp() *cli.Command {
	a := &app{}

	return &cli.Command{
		Name:  "storectl",
		Usage: "Maintenance tasks for the lace store back office",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE` before reading config",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if file := cmd.String("env-file"); file != "" {
				if err := godotenv.Load(file); err != nil {
					return ctx, fmt.Errorf("failed to load %s: %w", file, err)
				}
			}
			a.log = logger.NewWithDefaults()
			a.cfg = config.Load()
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if a.log != nil {
				_ = a.log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Apply pending postgres migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "status", Usage: "print migration status instead of migrating"},
				},
				Action: a.migrate,
			},
			{
				Name:  "create-user",
				Usage: "Create a back-office account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "password", Required: true, Sources: cli.EnvVars("STORECTL_PASSWORD")},
					&cli.StringFlag{Name: "role", Value: "admin", Usage: "admin or manager"},
				},
				Action: a.createUser,
			},
			{
				Name:  "cleanup-orders",
				Usage: "Delete orders older than 30 days",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "archive", Usage: "write the removed orders as JSON to `FILE`"},
				},
				Action: a.cleanupOrders,
			},
			{
				Name:   "telegram-chats",
				Usage:  "List chats the bot has seen that are not registered yet",
				Action: a.telegramChats,
			},
		},
	}
}
