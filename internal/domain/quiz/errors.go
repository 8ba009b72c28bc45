package quiz

import "errors"

// MinPoolSize is the smallest number of valid words a quiz can be built
// from: one correct answer plus three distinct distractors.
const MinPoolSize = 4

// DistractorCount is the number of wrong options per question.
const DistractorCount = MinPoolSize - 1

var (
	// ErrInsufficientPool is returned by Generate when fewer than MinPoolSize
	// words have both texts filled in. The learner has to add more words.
	ErrInsufficientPool = errors.New("at least 4 words with both texts are needed for a quiz")

	// ErrInvalidDirection is returned for an unknown quiz direction.
	ErrInvalidDirection = errors.New("invalid quiz direction")

	// ErrInvalidMode is returned for an unknown quiz mode.
	ErrInvalidMode = errors.New("invalid quiz mode")

	// ErrSessionNotActive is returned when answering a session that has not
	// started or is already complete.
	ErrSessionNotActive = errors.New("quiz session is not in progress")

	// ErrSessionStarted is returned when starting a session twice.
	ErrSessionStarted = errors.New("quiz session already started")

	// ErrNoQuestions is returned when starting a session without questions.
	ErrNoQuestions = errors.New("quiz session needs at least one question")
)
