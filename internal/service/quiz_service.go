package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/cache"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/quiz"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/google/uuid"
)

// QuizRequest describes the quiz to build.
type QuizRequest struct {
	// Count is the number of questions; zero means the configured default.
	Count     int
	Direction quiz.Direction
	Mode      quiz.Mode
	// Category restricts the word pool; empty means every category.
	Category domain.Category
}

// AnswerResult is the outcome of answering one question.
type AnswerResult struct {
	Correct       bool           `json:"correct"`
	CorrectAnswer string         `json:"correct_answer"`
	Complete      bool           `json:"complete"`
	Next          *quiz.Question `json:"next,omitempty"`
	Score         *quiz.Score    `json:"score,omitempty"`
}

// QuizService runs quiz sessions. Sessions live in memory and expire after
// the configured TTL of inactivity.
type QuizService interface {
	// Start builds a quiz from the word collection and opens a session.
	// Returns quiz.ErrInsufficientPool when fewer than four usable words exist.
	Start(ctx context.Context, req QuizRequest) (*quiz.Session, error)

	// Session returns a snapshot of a running or completed session.
	Session(ctx context.Context, sessionID uuid.UUID) (*quiz.Session, error)

	// Answer checks the answer to the current question and advances.
	// Answering the last question completes the quiz.
	Answer(ctx context.Context, sessionID uuid.UUID, answer string) (*AnswerResult, error)

	// Finish completes the quiz early, counting unanswered questions as
	// wrong, and returns the score. Finishing twice returns the same score.
	Finish(ctx context.Context, sessionID uuid.UUID) (*quiz.Score, error)
}

// quizEntry is a cached session. mu serializes answers to one session.
type quizEntry struct {
	mu       sync.Mutex
	session  *quiz.Session
	recorded bool
}

type quizServiceImpl struct {
	wordRepo     WordRepository
	progressRepo ProgressRepository
	sessions     *cache.InMemory[*quizEntry]
	loc          *time.Location
	defaultCount int
	logger       *slog.Logger
	now          func() time.Time

	// engine draws from a *rand.Rand, which is not safe for concurrent use.
	engineMu sync.Mutex
	engine   *quiz.Engine
}

// QuizServiceConfig holds the tunables of NewQuizService.
type QuizServiceConfig struct {
	DefaultCount int
	SessionTTL   time.Duration
	Location     *time.Location
}

// NewQuizService creates a new QuizService drawing questions from engine.
func NewQuizService(
	wordRepo WordRepository,
	progressRepo ProgressRepository,
	engine *quiz.Engine,
	cfg QuizServiceConfig,
	logger *slog.Logger,
) (QuizService, error) {
	if wordRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "wordRepo cannot be nil"}
	}
	if progressRepo == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "progressRepo cannot be nil"}
	}
	if engine == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "engine cannot be nil"}
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 10
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &quizServiceImpl{
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		sessions:     cache.NewInMemory[*quizEntry](cfg.SessionTTL),
		loc:          cfg.Location,
		defaultCount: cfg.DefaultCount,
		logger:       logger.With(slog.String("component", "quiz_service")),
		now:          time.Now,
		engine:       engine,
	}, nil
}

// Start implements QuizService.Start
func (s *quizServiceImpl) Start(ctx context.Context, req QuizRequest) (*quiz.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if req.Category != "" && !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidCategory)
	}
	count := req.Count
	if count <= 0 {
		count = s.defaultCount
	}

	words, _, err := s.wordRepo.List(ctx, store.WordFilter{Category: req.Category})
	if err != nil {
		log.Error("failed to list words for quiz", slog.String("error", err.Error()))
		return nil, NewServiceError("start_quiz", "failed to list words", err)
	}

	s.engineMu.Lock()
	questions, err := s.engine.Generate(words, count, req.Direction, req.Mode)
	s.engineMu.Unlock()
	if err != nil {
		log.Info("quiz could not be generated",
			slog.String("error", err.Error()),
			slog.Int("pool", len(words)),
			slog.String("category", string(req.Category)))
		return nil, err
	}

	session := quiz.NewSession(req.Direction, req.Mode, req.Category, s.now())
	if err := session.Start(questions); err != nil {
		return nil, NewServiceError("start_quiz", "failed to start session", err)
	}

	s.sessions.Set(session.ID.String(), &quizEntry{session: session})

	log.Info("quiz started",
		slog.String("session_id", session.ID.String()),
		slog.Int("questions", len(questions)),
		slog.String("direction", string(req.Direction)),
		slog.String("mode", string(req.Mode)))
	return snapshotSession(session), nil
}

// Session implements QuizService.Session
func (s *quizServiceImpl) Session(_ context.Context, sessionID uuid.UUID) (*quiz.Session, error) {
	entry, ok := s.sessions.Get(sessionID.String())
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return snapshotSession(entry.session), nil
}

// Answer implements QuizService.Answer
func (s *quizServiceImpl) Answer(ctx context.Context, sessionID uuid.UUID, answer string) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, ok := s.sessions.Get(sessionID.String())
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	question := entry.session.CurrentQuestion()
	correct, err := entry.session.Answer(answer)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:       correct,
		CorrectAnswer: question.Answer,
		Complete:      entry.session.IsComplete(),
	}
	if next := entry.session.CurrentQuestion(); next != nil {
		q := *next
		result.Next = &q
	}

	if result.Complete {
		if err := s.recordCompletion(ctx, entry); err != nil {
			return nil, err
		}
		result.Score = entry.session.Score
	}

	s.sessions.Set(sessionID.String(), entry)

	log.Debug("quiz answer recorded",
		slog.String("session_id", sessionID.String()),
		slog.Bool("correct", correct),
		slog.Bool("complete", result.Complete))
	return result, nil
}

// Finish implements QuizService.Finish
func (s *quizServiceImpl) Finish(ctx context.Context, sessionID uuid.UUID) (*quiz.Score, error) {
	entry, ok := s.sessions.Get(sessionID.String())
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	score, err := entry.session.Finish()
	if err != nil {
		return nil, err
	}
	if err := s.recordCompletion(ctx, entry); err != nil {
		return nil, err
	}

	s.sessions.Set(sessionID.String(), entry)
	return score, nil
}

// recordCompletion counts a completed quiz in the learner's progress once.
// Callers hold entry.mu.
func (s *quizServiceImpl) recordCompletion(ctx context.Context, entry *quizEntry) error {
	if entry.recorded {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	err := store.RunInTransaction(ctx, s.wordRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		_, err := updateProgress(ctx, s.progressRepo.WithTx(tx), func(p progress.Progress) progress.Progress {
			return progress.RecordQuiz(p, now, s.loc)
		})
		return err
	})
	if err != nil {
		log.Error("failed to record completed quiz",
			slog.String("session_id", entry.session.ID.String()),
			slog.String("error", err.Error()))
		return NewServiceError("finish_quiz", "failed to record quiz", err)
	}

	entry.recorded = true
	log.Info("quiz completed",
		slog.String("session_id", entry.session.ID.String()),
		slog.Int("correct", entry.session.Score.Correct),
		slog.Int("total", entry.session.Score.Total),
		slog.Int("percentage", entry.session.Score.Percentage))
	return nil
}

// snapshotSession copies a session so callers can read it without holding
// the entry lock.
func snapshotSession(s *quiz.Session) *quiz.Session {
	c := *s
	c.Questions = append([]quiz.Question(nil), s.Questions...)
	c.Answers = append([]string(nil), s.Answers...)
	if s.Score != nil {
		score := *s.Score
		score.Results = append([]quiz.Result(nil), s.Score.Results...)
		c.Score = &score
	}
	return &c
}
