// Package main implements the entry point for the vocabulary API server,
// which serves Russian-Uzbek word lists, spaced-repetition reviews, quizzes
// and study progress, and generates example sentences in the background.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/Husniddin989/rustili-lug-at/internal/config"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a migration command (up, down, reset, status, version) and exit")
	skipMigrations := flag.Bool("skip-migrations", false,
		"Start the server without applying pending migrations")
	flag.Parse()

	if err := run(*migrateCmd, *skipMigrations); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(migrateCmd string, skipMigrations bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("generation_enabled", cfg.LLM.GenerationEnabled()))

	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer db.Close()
		return postgres.Migrate(ctx, db, migrateCmd, l)
	}

	if !skipMigrations {
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
