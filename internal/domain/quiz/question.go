package quiz

import (
	"fmt"
	"strings"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/google/uuid"
)

// Direction selects which side of the word is asked.
type Direction string

// Quiz directions.
const (
	// DirectionForward asks the source text and expects the target text.
	DirectionForward Direction = "forward"
	// DirectionReverse asks the target text and expects the source text.
	DirectionReverse Direction = "reverse"
)

// ParseDirection validates a direction, defaulting empty input to forward.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DirectionForward, nil
	case DirectionForward, DirectionReverse:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Mode selects how the learner answers.
type Mode string

// Quiz modes.
const (
	ModeMultipleChoice Mode = "multiple_choice"
	ModeTyped          Mode = "typed"
)

// ParseMode validates a mode, defaulting empty input to multiple choice.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeMultipleChoice, nil
	case ModeMultipleChoice, ModeTyped:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Question is one generated quiz item. It is never persisted.
type Question struct {
	WordID uuid.UUID `json:"word_id"`
	Prompt string    `json:"prompt"`
	Answer string    `json:"answer"`

	// Options holds the correct answer and its distractors in random order.
	// Nil in typed mode.
	Options []string `json:"options,omitempty"`

	Category           domain.Category `json:"category"`
	Example            string          `json:"example,omitempty"`
	ExampleTranslation string          `json:"example_translation,omitempty"`
}

// sides returns the prompt and answer texts of w for the direction.
func sides(w *domain.Word, direction Direction) (prompt, answer string) {
	if direction == DirectionReverse {
		return w.TargetText, w.SourceText
	}
	return w.SourceText, w.TargetText
}
