package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/flowcast/internal/api"
	"github.com/terraincognita07/flowcast/internal/cli"
	"github.com/terraincognita07/flowcast/internal/config"
	"github.com/terraincognita07/flowcast/internal/db"
	"github.com/terraincognita07/flowcast/internal/logger"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type command struct {
	name  string
	email string
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		log.Fatal("database init failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cmd, cfg, database, log); err != nil {
		log.Error("command failed", "command", cmd.name, "error", err)
		stop()
		log.Sync()
		os.Exit(1)
	}
}

// parseCommand accepts no arguments (serve), "reset-password <email>" and
// "rebuild-cycles [email]".
func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: "serve"}, nil
	}

	switch name := strings.TrimSpace(args[0]); name {
	case "serve":
		if len(args) > 1 {
			return command{}, errors.New("usage: flowcast serve")
		}
		return command{name: name}, nil
	case "reset-password":
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return command{}, errors.New("usage: flowcast reset-password <email>")
		}
		return command{name: name, email: strings.TrimSpace(args[1])}, nil
	case "rebuild-cycles":
		if len(args) > 2 {
			return command{}, errors.New("usage: flowcast rebuild-cycles [email]")
		}
		cmd := command{name: name}
		if len(args) == 2 {
			cmd.email = strings.TrimSpace(args[1])
		}
		return cmd, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", name)
	}
}

func run(ctx context.Context, cmd command, cfg config.Config, database *gorm.DB, log *logger.Logger) error {
	switch cmd.name {
	case "reset-password":
		return cli.RunResetPasswordCommand(ctx, database, cmd.email, os.Stdout, log)
	case "rebuild-cycles":
		return cli.RunRebuildCyclesCommand(ctx, database, cmd.email, cfg.Prediction, os.Stdout, log)
	default:
		return serve(ctx, cfg, database, log)
	}
}

func newApp(cfg config.Config, database *gorm.DB, notifier *db.ChangeNotifier, log *logger.Logger) (*fiber.App, error) {
	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		Prediction:   cfg.Prediction,
		Logger:       log,
		Notifier:     notifier,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Flowcast",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(handler.RequestLogger)
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app, nil
}

func serve(ctx context.Context, cfg config.Config, database *gorm.DB, log *logger.Logger) error {
	notifier := db.NewChangeNotifier(0)
	app, err := newApp(cfg, database, notifier, log)
	if err != nil {
		return err
	}
	go logChanges(ctx, notifier, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("flowcast listening", "port", cfg.Port, "db", cfg.DBPath, "tz", cfg.Location.String())
	return app.Listen(":" + cfg.Port)
}

// logChanges traces every stored change until ctx is done.
func logChanges(ctx context.Context, notifier *db.ChangeNotifier, log *logger.Logger) {
	id, changes := notifier.Subscribe()
	defer notifier.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			log.Debug("data changed", "user_id", change.UserID, "kind", string(change.Kind))
		}
	}
}
