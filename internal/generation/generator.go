package generation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
)

// Example is a usage sentence in the source language with its translation.
type Example struct {
	Text        string `json:"example"`
	Translation string `json:"example_translation"`
}

// Validate reports ErrInvalidResponse when either side is blank or longer
// than a stored example may be.
func (e *Example) Validate() error {
	if e == nil || strings.TrimSpace(e.Text) == "" || strings.TrimSpace(e.Translation) == "" {
		return ErrInvalidResponse
	}
	if utf8.RuneCountInString(strings.TrimSpace(e.Text)) > domain.MaxExampleLength ||
		utf8.RuneCountInString(strings.TrimSpace(e.Translation)) > domain.MaxExampleLength {
		return ErrInvalidResponse
	}
	return nil
}

// Generator is the boundary between the application and an external
// language model.
type Generator interface {
	// GenerateExample writes an example sentence that uses the word's
	// source text, translated into the target language.
	// Errors wrap the sentinels in errors.go.
	GenerateExample(ctx context.Context, word *domain.Word) (*Example, error)
}

// NopGenerator is used when no model is configured.
type NopGenerator struct{}

// GenerateExample always fails with ErrGenerationDisabled.
func (NopGenerator) GenerateExample(context.Context, *domain.Word) (*Example, error) {
	return nil, ErrGenerationDisabled
}
