package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
)

// ProgressService reports and updates the learner's aggregate progress.
type ProgressService interface {
	// Snapshot returns the stored counters with word totals recomputed from
	// the collection.
	Snapshot(ctx context.Context) (progress.Progress, error)

	// RecordStudy registers a study event at now and updates the streak.
	RecordStudy(ctx context.Context, now time.Time) (progress.Progress, error)

	// RecordQuiz registers a completed quiz at now: QuizzesTaken grows by
	// one and the event counts as studying.
	RecordQuiz(ctx context.Context, now time.Time) (progress.Progress, error)
}

type progressServiceImpl struct {
	wordRepo     WordRepository
	progressRepo ProgressRepository
	loc          *time.Location
	logger       *slog.Logger
}

// NewProgressService creates a new ProgressService. Streak days are counted
// in loc; nil means UTC.
func NewProgressService(
	wordRepo WordRepository,
	progressRepo ProgressRepository,
	loc *time.Location,
	logger *slog.Logger,
) (ProgressService, error) {
	if wordRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "wordRepo cannot be nil"}
	}
	if progressRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "progressRepo cannot be nil"}
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		loc:          loc,
		logger:       logger.With(slog.String("component", "progress_service")),
	}, nil
}

// Snapshot implements ProgressService.Snapshot
func (s *progressServiceImpl) Snapshot(ctx context.Context) (progress.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := loadProgress(ctx, s.progressRepo)
	if err != nil {
		log.Error("failed to load progress", slog.String("error", err.Error()))
		return progress.Progress{}, NewServiceError("progress_snapshot", "failed to load progress", err)
	}

	total, unknown, err := s.wordRepo.Count(ctx)
	if err != nil {
		log.Error("failed to count words", slog.String("error", err.Error()))
		return progress.Progress{}, NewServiceError("progress_snapshot", "failed to count words", err)
	}

	return progress.WithCounts(p, total, unknown), nil
}

// RecordStudy implements ProgressService.RecordStudy
func (s *progressServiceImpl) RecordStudy(ctx context.Context, now time.Time) (progress.Progress, error) {
	return s.update(ctx, "record_study", func(p progress.Progress) progress.Progress {
		return progress.RecordStudy(p, now, s.loc)
	})
}

// RecordQuiz implements ProgressService.RecordQuiz
func (s *progressServiceImpl) RecordQuiz(ctx context.Context, now time.Time) (progress.Progress, error) {
	return s.update(ctx, "record_quiz", func(p progress.Progress) progress.Progress {
		return progress.RecordQuiz(p, now, s.loc)
	})
}

func (s *progressServiceImpl) update(
	ctx context.Context,
	operation string,
	apply func(progress.Progress) progress.Progress,
) (progress.Progress, error) {
	var updated progress.Progress
	err := store.RunInTransaction(ctx, s.wordRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		var err error
		updated, err = updateProgress(ctx, s.progressRepo.WithTx(tx), apply)
		return err
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update progress",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return progress.Progress{}, NewServiceError(operation, "failed to update progress", err)
	}
	return updated, nil
}

// loadProgress returns the stored progress, or the zero value before the
// first write.
func loadProgress(ctx context.Context, repo ProgressRepository) (progress.Progress, error) {
	p, err := repo.Get(ctx)
	if errors.Is(err, store.ErrProgressNotFound) {
		return progress.Progress{}, nil
	}
	return p, err
}

// updateProgress is the read-modify-write shared by every service that
// reports study activity. Callers pass a transactional repository.
func updateProgress(
	ctx context.Context,
	repo ProgressRepository,
	apply func(progress.Progress) progress.Progress,
) (progress.Progress, error) {
	p, err := loadProgress(ctx, repo)
	if err != nil {
		return progress.Progress{}, err
	}

	p = apply(p)
	if err := repo.Upsert(ctx, p); err != nil {
		return progress.Progress{}, err
	}
	return p, nil
}
