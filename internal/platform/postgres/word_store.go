package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var wordColumns = []string{
	"id",
	"source_text",
	"target_text",
	"category",
	"example",
	"example_translation",
	"is_unknown",
	"times_reviewed",
	"srs_level",
	"next_review",
	"last_reviewed",
	"created_at",
	"updated_at",
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
	// inTx disables concurrent queries, which a single transaction cannot
	// run, and makes GetByID lock the row until the transaction ends.
	inTx bool
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	_, inTx := db.(*sql.Tx)
	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
		inTx:   inTx,
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
		inTx:   true,
	}
}

// Create implements store.WordStore.Create
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query, args, err := psql.Insert("words").
		Columns(wordColumns...).
		Values(wordValues(word)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			log.Warn("word already exists", slog.String("word_id", word.ID.String()))
			return store.ErrWordExists
		}
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return MapError(err)
	}

	log.Debug("word created", slog.String("word_id", word.ID.String()))
	return nil
}

// CreateBatch implements store.WordStore.CreateBatch with a single
// multi-row INSERT.
func (s *PostgresWordStore) CreateBatch(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	insert := psql.Insert("words").Columns(wordColumns...)
	for _, w := range words {
		if err := w.Validate(); err != nil {
			log.Warn("word validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("word_id", w.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		insert = insert.Values(wordValues(w)...)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build batch insert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to create words",
			slog.String("error", err.Error()),
			slog.Int("count", len(words)))
		if IsUniqueViolation(err) {
			return store.ErrWordExists
		}
		return MapError(err)
	}

	log.Info("words created", slog.Int("count", len(words)))
	return nil
}

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := psql.Select(wordColumns...).
		From("words").
		Where("id = ?", id)
	if s.inTx {
		q = q.Suffix("FOR UPDATE")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	word, err := scanWord(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word_id", id.String()))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return nil, MapError(err)
	}

	return word, nil
}

// List implements store.WordStore.List. Outside a transaction the page and
// the total are fetched concurrently.
func (s *PostgresWordStore) List(ctx context.Context, filter store.WordFilter) ([]*domain.Word, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where := buildWordFilter(filter)

	var (
		words []*domain.Word
		total int
	)

	listFn := func(ctx context.Context) error {
		q := psql.Select(wordColumns...).From("words").OrderBy("seq")
		if len(where) > 0 {
			q = q.Where(where)
		}
		if filter.Limit > 0 {
			q = q.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Offset(uint64(filter.Offset))
		}

		query, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build select query: %w", err)
		}

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			w, err := scanWord(rows)
			if err != nil {
				return fmt.Errorf("scan word: %w", err)
			}
			words = append(words, w)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate words: %w", err)
		}
		return nil
	}

	countFn := func(ctx context.Context) error {
		q := psql.Select("COUNT(*)").From("words")
		if len(where) > 0 {
			q = q.Where(where)
		}

		query, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build count query: %w", err)
		}

		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
			return fmt.Errorf("count words: %w", err)
		}
		return nil
	}

	if s.inTx {
		if err := listFn(ctx); err != nil {
			log.Error("failed to list words", slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}
		if err := countFn(ctx); err != nil {
			log.Error("failed to count words", slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error { return listFn(egCtx) })
		eg.Go(func() error { return countFn(egCtx) })
		if err := eg.Wait(); err != nil {
			log.Error("failed to list words", slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}
	}

	if words == nil {
		words = []*domain.Word{}
	}
	return words, total, nil
}

// Count implements store.WordStore.Count
func (s *PostgresWordStore) Count(ctx context.Context) (int, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total, unknown int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_unknown) FROM words`,
	).Scan(&total, &unknown)
	if err != nil {
		log.Error("failed to count words", slog.String("error", err.Error()))
		return 0, 0, MapError(err)
	}
	return total, unknown, nil
}

// Update implements store.WordStore.Update
func (s *PostgresWordStore) Update(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during update",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query, args, err := psql.Update("words").
		SetMap(map[string]interface{}{
			"source_text":         word.SourceText,
			"target_text":         word.TargetText,
			"category":            string(word.Category),
			"example":             word.Example,
			"example_translation": word.ExampleTranslation,
			"is_unknown":          word.IsUnknown,
			"times_reviewed":      word.TimesReviewed,
			"srs_level":           nullInt(word.SRSLevel),
			"next_review":         nullTime(word.NextReview),
			"last_reviewed":       nullTime(word.LastReviewed),
			"updated_at":          word.UpdatedAt,
		}).
		Where("id = ?", word.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrWordNotFound)
}

// UpdateSRS implements store.WordStore.UpdateSRS
func (s *PostgresWordStore) UpdateSRS(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE words
		SET srs_level = $1, next_review = $2, last_reviewed = $3, times_reviewed = $4, updated_at = $5
		WHERE id = $6
	`,
		nullInt(word.SRSLevel),
		nullTime(word.NextReview),
		nullTime(word.LastReviewed),
		word.TimesReviewed,
		word.UpdatedAt,
		word.ID,
	)
	if err != nil {
		log.Error("failed to update word schedule",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrWordNotFound)
}

// Delete implements store.WordStore.Delete
func (s *PostgresWordStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete word",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrWordNotFound); err != nil {
		return err
	}

	log.Debug("word deleted", slog.String("word_id", id.String()))
	return nil
}

func buildWordFilter(filter store.WordFilter) squirrel.And {
	where := squirrel.And{}
	if filter.Category != "" {
		where = append(where, squirrel.Eq{"category": string(filter.Category)})
	}
	if filter.UnknownOnly {
		where = append(where, squirrel.Eq{"is_unknown": true})
	}
	if filter.DueBefore != nil {
		// Unscheduled rows are always due, whatever next_review says.
		where = append(where, squirrel.Or{
			squirrel.Eq{"srs_level": nil},
			squirrel.Eq{"next_review": nil},
			squirrel.LtOrEq{"next_review": *filter.DueBefore},
		})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"source_text": pattern},
			squirrel.ILike{"target_text": pattern},
		})
	}
	return where
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func wordValues(w *domain.Word) []interface{} {
	return []interface{}{
		w.ID,
		w.SourceText,
		w.TargetText,
		string(w.Category),
		w.Example,
		w.ExampleTranslation,
		w.IsUnknown,
		w.TimesReviewed,
		nullInt(w.SRSLevel),
		nullTime(w.NextReview),
		nullTime(w.LastReviewed),
		w.CreatedAt,
		w.UpdatedAt,
	}
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var (
		w            domain.Word
		category     string
		srsLevel     sql.NullInt64
		nextReview   sql.NullTime
		lastReviewed sql.NullTime
	)

	err := row.Scan(
		&w.ID,
		&w.SourceText,
		&w.TargetText,
		&category,
		&w.Example,
		&w.ExampleTranslation,
		&w.IsUnknown,
		&w.TimesReviewed,
		&srsLevel,
		&nextReview,
		&lastReviewed,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Category = domain.Category(category)
	if srsLevel.Valid {
		level := int(srsLevel.Int64)
		w.SRSLevel = &level
	}
	if nextReview.Valid {
		t := nextReview.Time.UTC()
		w.NextReview = &t
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time.UTC()
		w.LastReviewed = &t
	}
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()

	return &w, nil
}

func nullInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(p *time.Time) interface{} {
	if p == nil {
		return nil
	}
	return p.UTC()
}
