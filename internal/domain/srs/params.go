package srs

import (
	"errors"
	"fmt"
)

// Errors returned when validating custom parameters.
var (
	ErrEmptyIntervals   = errors.New("interval table cannot be empty")
	ErrNegativeInterval = errors.New("intervals cannot be negative")
	ErrLabelMismatch    = errors.New("each level needs exactly one label")
)

// Params defines the fixed schedule used by the scheduler.
type Params struct {
	// IntervalDays maps each level to the number of calendar days until the
	// next review. The last index is the terminal level.
	IntervalDays []int

	// LevelLabels holds one display label per level.
	LevelLabels []string
}

// NewDefaultParams returns the standard six-level schedule.
func NewDefaultParams() *Params {
	return &Params{
		IntervalDays: []int{0, 1, 3, 7, 14, 30},
		LevelLabels: []string{
			"New",
			"1 day",
			"3 days",
			"Week",
			"2 weeks",
			"Month",
		},
	}
}

// MaxLevel returns the terminal level.
func (p *Params) MaxLevel() int {
	return len(p.IntervalDays) - 1
}

// Validate checks the tables are usable.
func (p *Params) Validate() error {
	if len(p.IntervalDays) == 0 {
		return ErrEmptyIntervals
	}
	for level, days := range p.IntervalDays {
		if days < 0 {
			return fmt.Errorf("%w: level %d has %d days", ErrNegativeInterval, level, days)
		}
	}
	if len(p.LevelLabels) != len(p.IntervalDays) {
		return fmt.Errorf("%w: %d levels, %d labels",
			ErrLabelMismatch, len(p.IntervalDays), len(p.LevelLabels))
	}
	return nil
}
