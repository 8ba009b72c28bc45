package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation errors for Word
var (
	ErrEmptyWordID     = errors.New("word ID cannot be empty")
	ErrEmptySourceText = errors.New("word source text cannot be empty")
	ErrEmptyTargetText = errors.New("word target text cannot be empty")
	ErrNegativeReviews = errors.New("times reviewed cannot be negative")
	ErrTextTooLong     = errors.New("word text is too long")
	ErrExampleTooLong  = errors.New("word example is too long")
)

// Length limits in runes, after trimming.
const (
	MaxTextLength    = 200
	MaxExampleLength = 500
)

// WordContent holds the learner-editable fields of a word.
type WordContent struct {
	SourceText         string   `json:"source_text"`
	TargetText         string   `json:"target_text"`
	Category           Category `json:"category"`
	Example            string   `json:"example,omitempty"`
	ExampleTranslation string   `json:"example_translation,omitempty"`
}

// Word is a single vocabulary item together with its review state.
//
// The SRS fields are pointers so that words created before scheduling was
// introduced (or imported from elsewhere) can be told apart from words at
// level 0. A nil SRSLevel or NextReview means the word is always due.
type Word struct {
	ID uuid.UUID `json:"id"`
	WordContent

	IsUnknown     bool `json:"is_unknown"`
	TimesReviewed int  `json:"times_reviewed"`

	SRSLevel     *int       `json:"srs_level,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWord creates a word with a fresh ID and the given content.
// Texts are trimmed. SRS fields are left empty; the scheduler initializes them.
func NewWord(content WordContent, now time.Time) (*Word, error) {
	content.SourceText = strings.TrimSpace(content.SourceText)
	content.TargetText = strings.TrimSpace(content.TargetText)
	content.Example = strings.TrimSpace(content.Example)
	content.ExampleTranslation = strings.TrimSpace(content.ExampleTranslation)

	w := &Word{
		ID:          uuid.New(),
		WordContent: content,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWordID
	}

	if strings.TrimSpace(w.SourceText) == "" {
		return ErrEmptySourceText
	}

	if strings.TrimSpace(w.TargetText) == "" {
		return ErrEmptyTargetText
	}

	if tooLong(w.SourceText, MaxTextLength) || tooLong(w.TargetText, MaxTextLength) {
		return ErrTextTooLong
	}

	if tooLong(w.Example, MaxExampleLength) || tooLong(w.ExampleTranslation, MaxExampleLength) {
		return ErrExampleTooLong
	}

	if !w.Category.IsValid() {
		return ErrInvalidCategory
	}

	if w.TimesReviewed < 0 {
		return ErrNegativeReviews
	}

	return nil
}

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) > limit
}

// IsQuizEligible reports whether both texts are present.
func (w *Word) IsQuizEligible() bool {
	return strings.TrimSpace(w.SourceText) != "" && strings.TrimSpace(w.TargetText) != ""
}

// Clone returns a deep copy of the word so callers can derive new versions
// without aliasing the SRS pointers of the original.
func (w *Word) Clone() *Word {
	c := *w
	if w.SRSLevel != nil {
		level := *w.SRSLevel
		c.SRSLevel = &level
	}
	if w.NextReview != nil {
		next := *w.NextReview
		c.NextReview = &next
	}
	if w.LastReviewed != nil {
		last := *w.LastReviewed
		c.LastReviewed = &last
	}
	return &c
}

// FilterByCategory returns the words in the given category, preserving order.
// An empty category returns all words.
func FilterByCategory(words []*Word, category Category) []*Word {
	if category == "" {
		return words
	}
	out := make([]*Word, 0, len(words))
	for _, w := range words {
		if w.Category == category {
			out = append(out, w)
		}
	}
	return out
}

// CountByCategory tallies words per category.
func CountByCategory(words []*Word) map[Category]int {
	counts := make(map[Category]int, len(categoryIcons))
	for _, w := range words {
		counts[w.Category]++
	}
	return counts
}
