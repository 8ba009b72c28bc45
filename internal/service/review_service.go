package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/srs"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/google/uuid"
)

// ReviewService provides spaced repetition reviews.
type ReviewService interface {
	// Due returns the words due for review at now, in collection order.
	// Words that were never scheduled are always due.
	Due(ctx context.Context, now time.Time) ([]*domain.Word, error)

	// Grade records a review outcome for a word: the SRS level moves, the
	// next review is rescheduled, the review counter grows and the event
	// counts as studying. Everything happens in one transaction.
	Grade(ctx context.Context, id uuid.UUID, correct bool) (*domain.Word, error)
}

type reviewServiceImpl struct {
	wordRepo     WordRepository
	progressRepo ProgressRepository
	srsService   srs.Service
	loc          *time.Location
	logger       *slog.Logger
	now          func() time.Time
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	wordRepo WordRepository,
	progressRepo ProgressRepository,
	srsService srs.Service,
	loc *time.Location,
	logger *slog.Logger,
) (ReviewService, error) {
	if wordRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "wordRepo cannot be nil"}
	}
	if progressRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "progressRepo cannot be nil"}
	}
	if srsService == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "srsService cannot be nil"}
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		srsService:   srsService,
		loc:          loc,
		logger:       logger.With(slog.String("component", "review_service")),
		now:          time.Now,
	}, nil
}

// Due implements ReviewService.Due
func (s *reviewServiceImpl) Due(ctx context.Context, now time.Time) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidates, _, err := s.wordRepo.List(ctx, store.WordFilter{DueBefore: &now})
	if err != nil {
		log.Error("failed to list due words", slog.String("error", err.Error()))
		return nil, NewServiceError("due_words", "failed to list words", err)
	}

	due := s.srsService.SelectDue(candidates, now)
	log.Debug("due words selected", slog.Int("count", len(due)))
	return due, nil
}

// Grade implements ReviewService.Grade
func (s *reviewServiceImpl) Grade(ctx context.Context, id uuid.UUID, correct bool) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	var graded *domain.Word
	err := store.RunInTransaction(ctx, s.wordRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.wordRepo.WithTx(tx)

		word, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		next := s.srsService.RecordOutcome(word, correct, now)
		next.TimesReviewed++
		next.UpdatedAt = now.UTC()

		if err := txRepo.UpdateSRS(ctx, next); err != nil {
			return err
		}

		if _, err := updateProgress(ctx, s.progressRepo.WithTx(tx), func(p progress.Progress) progress.Progress {
			return progress.RecordStudy(p, now, s.loc)
		}); err != nil {
			return err
		}

		graded = next
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to grade word",
				slog.String("error", err.Error()),
				slog.String("word_id", id.String()),
				slog.Bool("correct", correct))
		}
		return nil, NewServiceError("grade_word", "failed to grade word", err)
	}

	log.Info("word graded",
		slog.String("word_id", id.String()),
		slog.Bool("correct", correct),
		slog.Int("srs_level", *graded.SRSLevel))
	return graded, nil
}
