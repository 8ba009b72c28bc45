package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/google/uuid"
)

// WordFilter narrows a word listing. Zero values mean "no restriction".
type WordFilter struct {
	Category domain.Category
	// UnknownOnly limits the result to words the learner marked as unknown.
	UnknownOnly bool
	// DueBefore keeps words that are unscheduled or whose next review is at
	// or before the given instant.
	DueBefore *time.Time
	// Search matches source or target text case-insensitively.
	Search string
	Limit  int
	Offset int
}

// WordStore defines the interface for word persistence.
type WordStore interface {
	// Create saves a new word. Returns ErrWordExists if the ID is taken.
	Create(ctx context.Context, word *domain.Word) error

	// CreateBatch saves several words. Run it inside RunInTransaction so a
	// failure leaves nothing behind.
	CreateBatch(ctx context.Context, words []*domain.Word) error

	// GetByID retrieves a word by its unique ID. Inside a transaction the
	// row stays locked until commit, so read-modify-write callers serialize.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// List returns the words matching filter in insertion order, together
	// with the number of matches ignoring Limit and Offset.
	List(ctx context.Context, filter WordFilter) ([]*domain.Word, int, error)

	// Count returns the total number of words and how many are marked unknown.
	Count(ctx context.Context) (total int, unknown int, err error)

	// Update replaces the editable fields and flags of an existing word.
	// Returns ErrWordNotFound if the word does not exist.
	Update(ctx context.Context, word *domain.Word) error

	// UpdateSRS writes only the scheduling columns and the review counter.
	// Grades read the word with GetByID in the same transaction first.
	UpdateSRS(ctx context.Context, word *domain.Word) error

	// Delete removes a word by its ID.
	// Returns ErrWordNotFound if the word does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a WordStore that runs its statements on tx.
	WithTx(tx *sql.Tx) WordStore
}
