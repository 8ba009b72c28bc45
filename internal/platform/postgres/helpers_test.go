package postgres

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var fixedTime = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func sampleWord() *domain.Word {
	level := 2
	next := fixedTime.AddDate(0, 0, 3)
	return &domain.Word{
		ID: uuid.MustParse("5f1c6a0e-9a4b-4a53-8f0e-0d7f2c1b9e11"),
		WordContent: domain.WordContent{
			SourceText:         "спасибо",
			TargetText:         "rahmat",
			Category:           domain.CategoryGreeting,
			Example:            "Спасибо за помощь!",
			ExampleTranslation: "Yordamingiz uchun rahmat!",
		},
		TimesReviewed: 4,
		SRSLevel:      &level,
		NextReview:    &next,
		LastReviewed:  &fixedTime,
		CreatedAt:     fixedTime,
		UpdatedAt:     fixedTime,
	}
}

func wordRows(words ...*domain.Word) *sqlmock.Rows {
	rows := sqlmock.NewRows(wordColumns)
	for _, w := range words {
		var level, next, last interface{}
		if w.SRSLevel != nil {
			level = int64(*w.SRSLevel)
		}
		if w.NextReview != nil {
			next = *w.NextReview
		}
		if w.LastReviewed != nil {
			last = *w.LastReviewed
		}
		rows.AddRow(
			w.ID.String(),
			w.SourceText,
			w.TargetText,
			string(w.Category),
			w.Example,
			w.ExampleTranslation,
			w.IsUnknown,
			int64(w.TimesReviewed),
			level,
			next,
			last,
			w.CreatedAt,
			w.UpdatedAt,
		)
	}
	return rows
}
