package main

// Apply, roll back or inspect database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -command down

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"docbuilder-backend/internal/shared/config"
	"docbuilder-backend/internal/shared/storage/db"
	"docbuilder-backend/internal/shared/telemetry"
)

func main() {
	command := flag.String("command", "up", "goose command: up, down or status")
	flag.Parse()

	cfg := config.Load()
	telemetry.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, *command); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": *command, "error": err.Error()})
		sqlDB.Close()
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"command": *command})
}
