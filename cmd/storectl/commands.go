package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"lace-store/internal/backend"
	"lace-store/internal/config"
	"lace-store/internal/database"
	"lace-store/internal/domain"
	"lace-store/internal/notification"
	"lace-store/internal/repository"
	"lace-store/internal/service"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func (a *app) migrate(ctx context.Context, cmd *cli.Command) error {
	db, err := database.Open(ctx, a.cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Bool("status") {
		return database.GetMigrationStatus(db)
	}
	return database.RunMigrations(db, a.log)
}

func (a *app) createUser(ctx context.Context, cmd *cli.Command) error {
	repos, closeRepos, err := a.repositories(ctx)
	if err != nil {
		return err
	}
	defer closeRepos()

	users := service.NewUserService(repos.Users, a.cfg.JWT.Secret, time.Duration(a.cfg.JWT.AccessExpiry)*time.Minute)
	user, err := users.Register(ctx,
		cmd.String("email"),
		cmd.String("name"),
		cmd.String("password"),
		domain.Role(strings.ToLower(cmd.String("role"))),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "created %s %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}

func (a *app) cleanupOrders(ctx context.Context, cmd *cli.Command) error {
	repos, closeRepos, err := a.repositories(ctx)
	if err != nil {
		return err
	}
	defer closeRepos()

	// status notices are pointless for deleted orders
	orders := service.NewOrderService(repos.Orders, silentNotifier{}, a.log)
	removed, err := orders.Cleanup(ctx, time.Now())
	if path := cmd.String("archive"); path != "" && len(removed) > 0 {
		if archiveErr := writeArchive(path, removed); archiveErr != nil {
			a.log.Error("Failed to write order archive", zap.String("path", path), zap.Error(archiveErr))
			if err == nil {
				err = archiveErr
			}
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "removed %d orders\n", len(removed))
	return nil
}

func (a *app) telegramChats(ctx context.Context, cmd *cli.Command) error {
	repos, closeRepos, err := a.repositories(ctx)
	if err != nil {
		return err
	}
	defer closeRepos()

	client := notification.NewTelegramClient(a.cfg.Telegram.APIURL, a.cfg.Telegram.Timeout)
	notifier := notification.NewNotifier(repos.Settings, client, a.cfg.Telegram.BotToken, a.log)

	chats, err := notifier.Discover(ctx, client)
	if err != nil {
		return err
	}
	return printChats(cmd.Root().Writer, chats)
}

func (a *app) repositories(ctx context.Context) (*repository.Repositories, func(), error) {
	repos, db, err := backend.OpenRepositories(ctx, a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	if a.cfg.Store.Driver == config.DriverMemory {
		a.log.Warn("The memory store driver keeps nothing between runs")
	}
	return repos, func() {
		if db != nil {
			db.Close()
		}
	}, nil
}

// writeArchive stores orders as an indented JSON array
func writeArchive(path string, orders []domain.Order) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(orders); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printChats(w io.Writer, chats []domain.TelegramChat) error {
	if len(chats) == 0 {
		_, err := fmt.Fprintln(w, "no new chats")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHAT ID\tTHREAD\tTYPE\tTITLE")
	for _, c := range chats {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", c.ChatID, c.ThreadID, c.Type, c.Title)
	}
	return tw.Flush()
}

type silentNotifier struct{}

func (silentNotifier) OrderCreated(context.Context, *domain.Order) {}

func (silentNotifier) OrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus, domain.OrderStatus) {
}
