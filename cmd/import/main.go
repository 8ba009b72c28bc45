// Command import loads a vocabulary file into the database.
//
// Text files hold one "source:target[:category]" entry per line; .xlsx
// workbooks hold the same fields in columns A to E after a header row.
// Duplicates of existing words are skipped. When example generation is
// configured, a pending generation task is stored for each new word and the
// server picks it up on its next start.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/config"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/srs"
	"github.com/Husniddin989/rustili-lug-at/internal/events"
	"github.com/Husniddin989/rustili-lug-at/internal/generation"
	"github.com/Husniddin989/rustili-lug-at/internal/importer"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/postgres"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
	"github.com/Husniddin989/rustili-lug-at/internal/task"
)

func main() {
	file := flag.String("file", "", "Path to a .txt or .xlsx vocabulary file (required)")
	sheet := flag.String("sheet", "", "Worksheet to read from an .xlsx file; defaults to the first one")
	dryRun := flag.Bool("dry-run", false, "Parse the file and report what would be imported")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "import: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), os.Stdout, *file, *sheet, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, path, sheet string, dryRun bool) error {
	contents, err := parse(path, sheet)
	var parseErr *importer.ParsingError
	if err != nil && !errors.As(err, &parseErr) {
		return err
	}
	if parseErr != nil {
		fmt.Fprintf(out, "skipping %d invalid lines: %v\n", len(parseErr.InvalidLines), parseErr.InvalidLines)
	}

	if dryRun {
		fmt.Fprintf(out, "%d entries parsed from %s\n", len(contents), filepath.Base(path))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := postgres.Open(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Study.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid study time zone %q: %w", cfg.Study.TimeZone, err)
	}

	wordRepo := service.NewWordRepositoryAdapter(postgres.NewPostgresWordStore(db, l), db)
	progressRepo := service.NewProgressRepositoryAdapter(postgres.NewPostgresProgressStore(db, l))
	srsService, err := srs.NewDefaultService()
	if err != nil {
		return fmt.Errorf("failed to create SRS service: %w", err)
	}

	var emitter events.EventEmitter
	inMemoryEmitter := events.NewInMemoryEventEmitter(l)
	if cfg.LLM.GenerationEnabled() {
		emitter = inMemoryEmitter
	}

	wordService, err := service.NewWordService(wordRepo, progressRepo, srsService, emitter, loc, l)
	if err != nil {
		return fmt.Errorf("failed to create word service: %w", err)
	}

	// Tasks are only persisted here; the generator is never called.
	factory := task.NewExampleGenerationTaskFactory(wordService, generation.NopGenerator{}, l)
	inMemoryEmitter.RegisterHandler(events.TypeExampleGeneration, task.NewTaskFactoryEventHandler(
		factory, deferredSubmitter{store: postgres.NewPostgresTaskStore(db, l)}, l))

	result, err := wordService.Import(ctx, contents)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	l.Info("import finished",
		slog.String("file", filepath.Base(path)),
		slog.Int("added", result.Added),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("invalid", result.Invalid))
	fmt.Fprintf(out, "added %d, duplicates %d, invalid %d\n", result.Added, result.Duplicates, result.Invalid)
	return nil
}

func parse(path, sheet string) ([]domain.WordContent, error) {
	if sheet == "" || !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.ParseFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return importer.ParseSpreadsheet(f, sheet)
}

// deferredSubmitter stores tasks as pending without running them.
type deferredSubmitter struct {
	store task.TaskStore
}

func (s deferredSubmitter) Submit(ctx context.Context, t task.Task) error {
	return s.store.SaveTask(ctx, t)
}
