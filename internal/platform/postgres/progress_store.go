package postgres

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

// PostgresProgressStore implements store.ProgressStore on the single-row
// progress table. Word totals are not stored; callers derive them.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
	inTx   bool
}

// NewPostgresProgressStore creates a new PostgresProgressStore.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	_, inTx := db.(*sql.Tx)
	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
		inTx:   inTx,
	}
}

var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{db: tx, logger: s.logger, inTx: true}
}

// Get implements store.ProgressStore.Get
func (s *PostgresProgressStore) Get(ctx context.Context) (progress.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		p             progress.Progress
		lastStudied   sql.NullTime
		lastStudyDate sql.NullTime
	)

	query := `
		SELECT quizzes_taken, current_streak, longest_streak, last_studied, last_study_date
		FROM progress
		WHERE id = 1`
	if s.inTx {
		// Concurrent quiz and review writers queue behind this lock.
		query += " FOR UPDATE"
	}

	err := s.db.QueryRowContext(ctx, query).Scan(&p.QuizzesTaken, &p.CurrentStreak, &p.LongestStreak, &lastStudied, &lastStudyDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return progress.Progress{}, store.ErrProgressNotFound
		}
		log.Error("failed to load progress", slog.String("error", err.Error()))
		return progress.Progress{}, MapError(err)
	}

	if lastStudied.Valid {
		t := lastStudied.Time.UTC()
		p.LastStudied = &t
	}
	if lastStudyDate.Valid {
		d := lastStudyDate.Time
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		p.LastStudyDate = &day
	}

	return p, nil
}

// Upsert implements store.ProgressStore.Upsert
func (s *PostgresProgressStore) Upsert(ctx context.Context, p progress.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var studyDate interface{}
	if p.LastStudyDate != nil {
		studyDate = p.LastStudyDate.Format(time.DateOnly)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress (id, quizzes_taken, current_streak, longest_streak, last_studied, last_study_date, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			quizzes_taken = EXCLUDED.quizzes_taken,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_studied = EXCLUDED.last_studied,
			last_study_date = EXCLUDED.last_study_date,
			updated_at = EXCLUDED.updated_at
	`,
		p.QuizzesTaken,
		p.CurrentStreak,
		p.LongestStreak,
		nullTime(p.LastStudied),
		studyDate,
	)
	if err != nil {
		log.Error("failed to save progress", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("progress saved",
		slog.Int("quizzes_taken", p.QuizzesTaken),
		slog.Int("current_streak", p.CurrentStreak))
	return nil
}
