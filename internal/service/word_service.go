package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/srs"
	"github.com/Husniddin989/rustili-lug-at/internal/events"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/Husniddin989/rustili-lug-at/internal/task"
	"github.com/google/uuid"
)

// WordUpdate carries the fields to change on a word. Nil fields are kept.
type WordUpdate struct {
	SourceText         *string
	TargetText         *string
	Category           *domain.Category
	Example            *string
	ExampleTranslation *string
	IsUnknown          *bool
}

// CategorySummary describes one category and how many words it holds.
type CategorySummary struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Icon     string          `json:"icon"`
	Count    int             `json:"count"`
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
}

// WordService provides operations on the word collection.
type WordService interface {
	// AddWord validates content, schedules the word for immediate review
	// and saves it. A word without an example triggers background
	// example generation.
	AddWord(ctx context.Context, content domain.WordContent) (*domain.Word, error)

	// GetWord retrieves a word by its ID.
	GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// ListWords returns the words matching filter and the total match count.
	ListWords(ctx context.Context, filter store.WordFilter) ([]*domain.Word, int, error)

	// UpdateWord merges the non-nil fields of update into the word.
	UpdateWord(ctx context.Context, id uuid.UUID, update WordUpdate) (*domain.Word, error)

	// DeleteWord removes a word.
	DeleteWord(ctx context.Context, id uuid.UUID) error

	// SetUnknown marks or unmarks a word as unknown.
	SetUnknown(ctx context.Context, id uuid.UUID, unknown bool) (*domain.Word, error)

	// RecordFlashcard applies a flashcard outcome: the word becomes unknown
	// unless the learner knew it, its review counter grows and the event
	// counts as studying.
	RecordFlashcard(ctx context.Context, id uuid.UUID, known bool) (*domain.Word, error)

	// Categories returns every known category with its word count.
	Categories(ctx context.Context) ([]CategorySummary, error)

	// SeedIfEmpty loads the starter vocabulary into an empty collection and
	// returns how many words it added.
	SeedIfEmpty(ctx context.Context) (int, error)

	// Import adds words in bulk, skipping invalid entries and entries whose
	// source and target already exist.
	Import(ctx context.Context, contents []domain.WordContent) (*ImportResult, error)

	// SetGeneratedExample stores a generated example if the word still has
	// none, and reports whether it did.
	SetGeneratedExample(ctx context.Context, id uuid.UUID, example, translation string) (bool, error)
}

var _ task.WordExampleService = (WordService)(nil)

type wordServiceImpl struct {
	wordRepo     WordRepository
	progressRepo ProgressRepository
	srsService   srs.Service
	eventEmitter events.EventEmitter
	loc          *time.Location
	logger       *slog.Logger
	now          func() time.Time
}

// NewWordService creates a new WordService. A nil eventEmitter disables
// example generation; a nil loc counts study days in UTC.
func NewWordService(
	wordRepo WordRepository,
	progressRepo ProgressRepository,
	srsService srs.Service,
	eventEmitter events.EventEmitter,
	loc *time.Location,
	logger *slog.Logger,
) (WordService, error) {
	if wordRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "wordRepo cannot be nil"}
	}
	if progressRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "progressRepo cannot be nil"}
	}
	if srsService == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "srsService cannot be nil"}
	}
	if eventEmitter == nil {
		eventEmitter = events.NopEmitter{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &wordServiceImpl{
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		srsService:   srsService,
		eventEmitter: eventEmitter,
		loc:          loc,
		logger:       logger.With(slog.String("component", "word_service")),
		now:          time.Now,
	}, nil
}

// AddWord implements WordService.AddWord
func (s *wordServiceImpl) AddWord(ctx context.Context, content domain.WordContent) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	word, err := s.newWord(content)
	if err != nil {
		log.Warn("rejected invalid word", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.wordRepo.Create(ctx, word); err != nil {
		log.Error("failed to save word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return nil, NewServiceError("add_word", "failed to save word", err)
	}

	log.Info("word added",
		slog.String("word_id", word.ID.String()),
		slog.String("category", string(word.Category)))

	s.requestExample(ctx, word)
	return word, nil
}

// GetWord implements WordService.GetWord
func (s *wordServiceImpl) GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	word, err := s.wordRepo.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve word",
				slog.String("error", err.Error()),
				slog.String("word_id", id.String()))
		}
		return nil, NewServiceError("get_word", "failed to retrieve word", err)
	}
	return word, nil
}

// ListWords implements WordService.ListWords
func (s *wordServiceImpl) ListWords(ctx context.Context, filter store.WordFilter) ([]*domain.Word, int, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidCategory)
	}

	words, total, err := s.wordRepo.List(ctx, filter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list words",
			slog.String("error", err.Error()))
		return nil, 0, NewServiceError("list_words", "failed to list words", err)
	}
	return words, total, nil
}

// UpdateWord implements WordService.UpdateWord
func (s *wordServiceImpl) UpdateWord(ctx context.Context, id uuid.UUID, update WordUpdate) (*domain.Word, error) {
	word, _, err := s.mutateWord(ctx, "update_word", id, func(w *domain.Word) (bool, error) {
		applyUpdate(w, update)
		if err := w.Validate(); err != nil {
			return false, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return true, nil
	}, nil)
	return word, err
}

// DeleteWord implements WordService.DeleteWord
func (s *wordServiceImpl) DeleteWord(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.wordRepo.Delete(ctx, id); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete word",
				slog.String("error", err.Error()),
				slog.String("word_id", id.String()))
		}
		return NewServiceError("delete_word", "failed to delete word", err)
	}

	log.Info("word deleted", slog.String("word_id", id.String()))
	return nil
}

// SetUnknown implements WordService.SetUnknown
func (s *wordServiceImpl) SetUnknown(ctx context.Context, id uuid.UUID, unknown bool) (*domain.Word, error) {
	word, _, err := s.mutateWord(ctx, "set_unknown", id, func(w *domain.Word) (bool, error) {
		if w.IsUnknown == unknown {
			return false, nil
		}
		w.IsUnknown = unknown
		return true, nil
	}, nil)
	return word, err
}

// RecordFlashcard implements WordService.RecordFlashcard
func (s *wordServiceImpl) RecordFlashcard(ctx context.Context, id uuid.UUID, known bool) (*domain.Word, error) {
	now := s.now()
	word, _, err := s.mutateWord(ctx, "record_flashcard", id, func(w *domain.Word) (bool, error) {
		w.IsUnknown = !known
		w.TimesReviewed++
		return true, nil
	}, func(ctx context.Context, tx *sql.Tx) error {
		_, err := updateProgress(ctx, s.progressRepo.WithTx(tx), func(p progress.Progress) progress.Progress {
			return progress.RecordStudy(p, now, s.loc)
		})
		return err
	})
	return word, err
}

// Categories implements WordService.Categories
func (s *wordServiceImpl) Categories(ctx context.Context) ([]CategorySummary, error) {
	words, _, err := s.wordRepo.List(ctx, store.WordFilter{})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list words for categories",
			slog.String("error", err.Error()))
		return nil, NewServiceError("categories", "failed to list words", err)
	}

	counts := domain.CountByCategory(words)
	all := domain.AllCategories()
	summaries := make([]CategorySummary, 0, len(all))
	for _, c := range all {
		summaries = append(summaries, CategorySummary{
			Category: c,
			Label:    c.Label(),
			Icon:     c.Icon(),
			Count:    counts[c],
		})
	}
	return summaries, nil
}

// SeedIfEmpty implements WordService.SeedIfEmpty
func (s *wordServiceImpl) SeedIfEmpty(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	total, _, err := s.wordRepo.Count(ctx)
	if err != nil {
		log.Error("failed to count words", slog.String("error", err.Error()))
		return 0, NewServiceError("seed_words", "failed to count words", err)
	}
	if total > 0 {
		log.Debug("word collection not empty, skipping seed", slog.Int("total", total))
		return 0, nil
	}

	seed := StarterVocabulary()
	words := make([]*domain.Word, 0, len(seed))
	for _, content := range seed {
		w, err := s.newWord(content)
		if err != nil {
			return 0, NewServiceError("seed_words", "invalid starter word", err)
		}
		words = append(words, w)
	}

	if err := s.createBatch(ctx, words); err != nil {
		log.Error("failed to seed words", slog.String("error", err.Error()))
		return 0, NewServiceError("seed_words", "failed to save starter words", err)
	}

	log.Info("starter vocabulary loaded", slog.Int("count", len(words)))
	return len(words), nil
}

// Import implements WordService.Import
func (s *wordServiceImpl) Import(ctx context.Context, contents []domain.WordContent) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := &ImportResult{}

	existing, _, err := s.wordRepo.List(ctx, store.WordFilter{})
	if err != nil {
		log.Error("failed to list words for import", slog.String("error", err.Error()))
		return nil, NewServiceError("import_words", "failed to list existing words", err)
	}

	seen := make(map[string]struct{}, len(existing)+len(contents))
	for _, w := range existing {
		seen[pairKey(w.SourceText, w.TargetText)] = struct{}{}
	}

	words := make([]*domain.Word, 0, len(contents))
	for _, content := range contents {
		w, err := s.newWord(content)
		if err != nil {
			result.Invalid++
			continue
		}
		key := pairKey(w.SourceText, w.TargetText)
		if _, dup := seen[key]; dup {
			result.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		words = append(words, w)
	}

	if len(words) > 0 {
		if err := s.createBatch(ctx, words); err != nil {
			log.Error("failed to import words", slog.String("error", err.Error()))
			return nil, NewServiceError("import_words", "failed to save imported words", err)
		}
	}
	result.Added = len(words)

	log.Info("words imported",
		slog.Int("added", result.Added),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("invalid", result.Invalid))

	for _, w := range words {
		s.requestExample(ctx, w)
	}
	return result, nil
}

// SetGeneratedExample implements WordService.SetGeneratedExample
func (s *wordServiceImpl) SetGeneratedExample(
	ctx context.Context,
	id uuid.UUID,
	example, translation string,
) (bool, error) {
	_, changed, err := s.mutateWord(ctx, "set_generated_example", id, func(w *domain.Word) (bool, error) {
		if strings.TrimSpace(w.Example) != "" {
			return false, nil
		}
		w.Example = strings.TrimSpace(example)
		w.ExampleTranslation = strings.TrimSpace(translation)
		return true, nil
	}, nil)
	return changed, err
}

// newWord builds a scheduled word from user content.
func (s *wordServiceImpl) newWord(content domain.WordContent) (*domain.Word, error) {
	if content.Category == "" {
		content.Category = domain.DefaultCategory
	}
	content.Category = domain.Category(strings.ToLower(strings.TrimSpace(string(content.Category))))

	now := s.now()
	word, err := domain.NewWord(content, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return s.srsService.Initialize(word, now), nil
}

func (s *wordServiceImpl) createBatch(ctx context.Context, words []*domain.Word) error {
	return store.RunInTransaction(ctx, s.wordRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.wordRepo.WithTx(tx).CreateBatch(ctx, words)
	})
}

// mutateWord loads a word inside a transaction, lets fn change it and saves
// it when fn reports a change. extra, if set, runs in the same transaction
// after the save.
func (s *wordServiceImpl) mutateWord(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	fn func(w *domain.Word) (bool, error),
	extra func(ctx context.Context, tx *sql.Tx) error,
) (*domain.Word, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		result  *domain.Word
		changed bool
	)
	err := store.RunInTransaction(ctx, s.wordRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.wordRepo.WithTx(tx)

		// Locked until commit; a concurrent grade waits for this update.
		current, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		word := current.Clone()
		changed, err = fn(word)
		if err != nil {
			return err
		}

		if changed {
			word.UpdatedAt = s.now().UTC()
			if err := txRepo.Update(ctx, word); err != nil {
				return err
			}
		}

		if extra != nil {
			if err := extra(ctx, tx); err != nil {
				return err
			}
		}

		result = word
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("word update failed",
				slog.String("operation", operation),
				slog.String("error", err.Error()),
				slog.String("word_id", id.String()))
		}
		if isValidationError(err) {
			return nil, false, err
		}
		return nil, false, NewServiceError(operation, "failed to update word", err)
	}

	log.Debug("word updated",
		slog.String("operation", operation),
		slog.String("word_id", id.String()),
		slog.Bool("changed", changed))
	return result, changed, nil
}

// requestExample emits an example generation event for a word without an
// example. Failures are logged; the word itself is already saved.
func (s *wordServiceImpl) requestExample(ctx context.Context, word *domain.Word) {
	if strings.TrimSpace(word.Example) != "" {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewTaskRequestEvent(
		events.TypeExampleGeneration,
		events.ExampleGenerationPayload{WordID: word.ID},
	)
	if err != nil {
		log.Error("failed to create example generation event",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit example generation event",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()),
			slog.String("event_id", event.ID.String()))
		return
	}

	log.Debug("example generation requested",
		slog.String("word_id", word.ID.String()),
		slog.String("event_id", event.ID.String()))
}

func applyUpdate(w *domain.Word, u WordUpdate) {
	if u.SourceText != nil {
		w.SourceText = strings.TrimSpace(*u.SourceText)
	}
	if u.TargetText != nil {
		w.TargetText = strings.TrimSpace(*u.TargetText)
	}
	if u.Category != nil {
		w.Category = domain.Category(strings.ToLower(strings.TrimSpace(string(*u.Category))))
	}
	if u.Example != nil {
		w.Example = strings.TrimSpace(*u.Example)
	}
	if u.ExampleTranslation != nil {
		w.ExampleTranslation = strings.TrimSpace(*u.ExampleTranslation)
	}
	if u.IsUnknown != nil {
		w.IsUnknown = *u.IsUnknown
	}
}

func pairKey(source, target string) string {
	return strings.ToLower(strings.TrimSpace(source)) + "\x00" + strings.ToLower(strings.TrimSpace(target))
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
