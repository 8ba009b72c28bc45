package store

import (
	"context"
	"database/sql"

	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
)

// ProgressStore persists the learner's single progress record.
type ProgressStore interface {
	// Get returns the stored progress. Inside a transaction the row stays
	// locked until commit.
	// Returns ErrProgressNotFound if the row is missing.
	Get(ctx context.Context) (progress.Progress, error)

	// Upsert writes the progress record, creating it if necessary.
	Upsert(ctx context.Context, p progress.Progress) error

	// WithTx returns a ProgressStore that runs its statements on tx.
	WithTx(tx *sql.Tx) ProgressStore
}
