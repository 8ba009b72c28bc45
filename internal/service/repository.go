package service

import (
	"context"
	"database/sql"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/google/uuid"
)

// WordRepository defines the word persistence needed by the services.
type WordRepository interface {
	Create(ctx context.Context, word *domain.Word) error
	CreateBatch(ctx context.Context, words []*domain.Word) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	List(ctx context.Context, filter store.WordFilter) ([]*domain.Word, int, error)
	Count(ctx context.Context) (total int, unknown int, err error)
	Update(ctx context.Context, word *domain.Word) error
	UpdateSRS(ctx context.Context, word *domain.Word) error
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) WordRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// ProgressRepository defines the progress persistence needed by the services.
type ProgressRepository interface {
	Get(ctx context.Context) (progress.Progress, error)
	Upsert(ctx context.Context, p progress.Progress) error
	WithTx(tx *sql.Tx) ProgressRepository
}

// NewWordRepositoryAdapter allows a store.WordStore to be used where a
// WordRepository is expected.
func NewWordRepositoryAdapter(wordStore store.WordStore, db *sql.DB) WordRepository {
	return &wordRepositoryAdapter{WordStore: wordStore, db: db}
}

type wordRepositoryAdapter struct {
	store.WordStore
	db *sql.DB
}

// WithTx implements WordRepository.WithTx
func (a *wordRepositoryAdapter) WithTx(tx *sql.Tx) WordRepository {
	return &wordRepositoryAdapter{WordStore: a.WordStore.WithTx(tx), db: a.db}
}

// DB implements WordRepository.DB
func (a *wordRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewProgressRepositoryAdapter allows a store.ProgressStore to be used where
// a ProgressRepository is expected.
func NewProgressRepositoryAdapter(progressStore store.ProgressStore) ProgressRepository {
	return &progressRepositoryAdapter{ProgressStore: progressStore}
}

type progressRepositoryAdapter struct {
	store.ProgressStore
}

// WithTx implements ProgressRepository.WithTx
func (a *progressRepositoryAdapter) WithTx(tx *sql.Tx) ProgressRepository {
	return &progressRepositoryAdapter{ProgressStore: a.ProgressStore.WithTx(tx)}
}
