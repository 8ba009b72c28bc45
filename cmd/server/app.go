package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/config"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/quiz"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/srs"
	"github.com/Husniddin989/rustili-lug-at/internal/events"
	"github.com/Husniddin989/rustili-lug-at/internal/generation"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/gemini"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/postgres"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
	"github.com/Husniddin989/rustili-lug-at/internal/task"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	wordService     service.WordService
	reviewService   service.ReviewService
	quizService     service.QuizService
	progressService service.ProgressService

	taskRunner *task.TaskRunner
}

// newApplication builds stores, services and the background task runner.
// When no LLM key is configured, words are stored without generated examples
// and no tasks are ever submitted.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	loc, err := time.LoadLocation(cfg.Study.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid study time zone %q: %w", cfg.Study.TimeZone, err)
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	wordRepo := service.NewWordRepositoryAdapter(postgres.NewPostgresWordStore(db, logger), db)
	progressRepo := service.NewProgressRepositoryAdapter(postgres.NewPostgresProgressStore(db, logger))

	srsService, err := srs.NewDefaultService()
	if err != nil {
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}

	var (
		emitter   events.EventEmitter
		generator generation.Generator = generation.NopGenerator{}
	)
	inMemoryEmitter := events.NewInMemoryEventEmitter(logger)
	if cfg.LLM.GenerationEnabled() {
		g, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create example generator: %w", err)
		}
		generator = g
		emitter = inMemoryEmitter
	} else {
		logger.Info("example generation disabled, no LLM key configured")
	}

	app.wordService, err = service.NewWordService(wordRepo, progressRepo, srsService, emitter, loc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create word service: %w", err)
	}

	app.reviewService, err = service.NewReviewService(wordRepo, progressRepo, srsService, loc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	engine := quiz.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())))
	app.quizService, err = service.NewQuizService(wordRepo, progressRepo, engine, service.QuizServiceConfig{
		DefaultCount: cfg.Study.DefaultQuizSize,
		SessionTTL:   time.Duration(cfg.Study.SessionTTLMinutes) * time.Minute,
		Location:     loc,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}

	app.progressService, err = service.NewProgressService(wordRepo, progressRepo, loc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress service: %w", err)
	}

	// The factory needs the word service, so the handler is registered only
	// after the service that emits to it exists.
	factory := task.NewExampleGenerationTaskFactory(app.wordService, generator, logger)
	registry := task.NewRegistry()
	factory.Register(registry)

	app.taskRunner = task.NewTaskRunner(postgres.NewPostgresTaskStore(db, logger), registry, task.TaskRunnerConfig{
		WorkerCount:  cfg.Task.WorkerCount,
		QueueSize:    cfg.Task.QueueSize,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger)

	inMemoryEmitter.RegisterHandler(events.TypeExampleGeneration,
		task.NewTaskFactoryEventHandler(factory, app.taskRunner, logger))

	if cfg.Study.SeedOnEmpty {
		seeded, err := app.wordService.SeedIfEmpty(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to seed vocabulary: %w", err)
		}
		if seeded > 0 {
			logger.Info("seeded empty vocabulary", slog.Int("words", seeded))
		}
	}

	logger.Info("application initialized")
	return app, nil
}

// Run starts the task runner and serves HTTP until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func (app *application) Run(ctx context.Context) error {
	if err := app.taskRunner.Start(ctx); err != nil {
		app.cleanup()
		return fmt.Errorf("failed to start task runner: %w", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and closes the database.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
