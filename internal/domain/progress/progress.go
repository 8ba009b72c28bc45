// Package progress keeps the learner's aggregate counters and study streak.
package progress

import (
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
)

// Progress holds counters derived from the word collection plus the
// study-day streak. Values are replaced, never mutated in place.
type Progress struct {
	TotalWords    int        `json:"total_words"`
	KnownWords    int        `json:"known_words"`
	UnknownWords  int        `json:"unknown_words"`
	QuizzesTaken  int        `json:"quizzes_taken"`
	LastStudied   *time.Time `json:"last_studied,omitempty"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`

	// LastStudyDate is the calendar day of the last study event, stored as
	// midnight UTC of that day in the learner's time zone.
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`
}

// Recompute refreshes the word totals from the collection.
// KnownWords + UnknownWords always equals TotalWords afterwards.
func Recompute(p Progress, words []*domain.Word) Progress {
	unknown := 0
	for _, w := range words {
		if w.IsUnknown {
			unknown++
		}
	}
	return WithCounts(p, len(words), unknown)
}

// WithCounts sets the totals from precomputed counts. unknown is clamped
// into [0, total].
func WithCounts(p Progress, total, unknown int) Progress {
	if total < 0 {
		total = 0
	}
	if unknown < 0 {
		unknown = 0
	}
	if unknown > total {
		unknown = total
	}
	p.TotalWords = total
	p.UnknownWords = unknown
	p.KnownWords = total - unknown
	return p
}

// RecordStudy registers a study event at now and updates the streak once
// per calendar day in loc.
//
// Studying again on the same day leaves the streak alone. A gap of exactly
// one day extends it; a longer gap or no previous study day restarts it at
// one. LongestStreak tracks the running maximum.
func RecordStudy(p Progress, now time.Time, loc *time.Location) Progress {
	studied := now
	p.LastStudied = &studied

	today := CalendarDate(now, loc)

	if p.LastStudyDate == nil {
		p.CurrentStreak = 1
	} else {
		switch gap := DaysBetween(*p.LastStudyDate, today); {
		case gap <= 0:
			// Same day, or a clock that moved backwards: keep the later date.
			if p.CurrentStreak < 1 {
				p.CurrentStreak = 1
			}
			today = *p.LastStudyDate
		case gap == 1:
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastStudyDate = &today

	return p
}

// RecordQuiz counts a completed quiz and registers it as a study event.
func RecordQuiz(p Progress, now time.Time, loc *time.Location) Progress {
	p.QuizzesTaken++
	return RecordStudy(p, now, loc)
}

// CalendarDate returns the day t falls on in loc, as midnight UTC.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b. Both are
// expected to come from CalendarDate. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
