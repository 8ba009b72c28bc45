// Package srs implements the six-level spaced repetition schedule.
//
// Every operation is a pure function of its inputs and the supplied "now":
// nothing here reads the clock, touches storage or mutates its arguments.
// Callers persist the returned words.
package srs

import (
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// Initialize gives a word its starting schedule unless it already has one.
	Initialize(word *domain.Word, now time.Time) *domain.Word

	// RecordOutcome computes the word's next schedule after a review.
	RecordOutcome(word *domain.Word, wasCorrect bool, now time.Time) *domain.Word

	// SelectDue returns the words due at now, in input order.
	SelectDue(words []*domain.Word, now time.Time) []*domain.Word

	// LevelLabel returns the display label of a level.
	LevelLabel(level int) string

	// IntervalDays returns the review interval of a level in days.
	IntervalDays(level int) int

	// MaxLevel returns the terminal level.
	MaxLevel() int
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultService{params: params}, nil
}

// Initialize returns the word unchanged when it already has a level,
// otherwise a copy at level 0 that is due immediately.
func (s *defaultService) Initialize(word *domain.Word, now time.Time) *domain.Word {
	if word.SRSLevel != nil {
		return word
	}

	initialized := word.Clone()
	level := 0
	next := now
	initialized.SRSLevel = &level
	initialized.NextReview = &next
	initialized.LastReviewed = nil

	return initialized
}

// RecordOutcome implements Service.
func (s *defaultService) RecordOutcome(word *domain.Word, wasCorrect bool, now time.Time) *domain.Word {
	return applyOutcome(word, wasCorrect, now, s.params)
}

// SelectDue implements Service.
func (s *defaultService) SelectDue(words []*domain.Word, now time.Time) []*domain.Word {
	due := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		if isDue(w, now) {
			due = append(due, w)
		}
	}
	return due
}

// LevelLabel falls back to the level 0 label for out-of-range levels.
func (s *defaultService) LevelLabel(level int) string {
	if level < 0 || level > s.params.MaxLevel() {
		return s.params.LevelLabels[0]
	}
	return s.params.LevelLabels[level]
}

// IntervalDays implements Service.
func (s *defaultService) IntervalDays(level int) int {
	return s.params.IntervalDays[clampLevel(level, s.params)]
}

// MaxLevel implements Service.
func (s *defaultService) MaxLevel() int {
	return s.params.MaxLevel()
}
