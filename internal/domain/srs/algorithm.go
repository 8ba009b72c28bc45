package srs

import (
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
)

// clampLevel forces level into [0, MaxLevel].
func clampLevel(level int, params *Params) int {
	if level < 0 {
		return 0
	}
	if top := params.MaxLevel(); level > top {
		return top
	}
	return level
}

// nextLevel advances one step on success and resets to zero on failure.
// There is no partial credit.
func nextLevel(current int, wasCorrect bool, params *Params) int {
	if !wasCorrect {
		return 0
	}
	return clampLevel(clampLevel(current, params)+1, params)
}

// nextReviewTime adds the level's interval in calendar days to now.
// AddDate keeps the wall-clock time of now, so the schedule is anchored at
// the review instant rather than at midnight.
func nextReviewTime(now time.Time, level int, params *Params) time.Time {
	return now.AddDate(0, 0, params.IntervalDays[clampLevel(level, params)])
}

// currentLevel reads the stored level, treating an absent level as zero.
func currentLevel(word *domain.Word) int {
	if word.SRSLevel == nil {
		return 0
	}
	return *word.SRSLevel
}

// applyOutcome builds the next version of the word after a review.
// TimesReviewed is left alone; the caller owns that counter.
func applyOutcome(word *domain.Word, wasCorrect bool, now time.Time, params *Params) *domain.Word {
	updated := word.Clone()

	level := nextLevel(currentLevel(word), wasCorrect, params)
	next := nextReviewTime(now, level, params)
	reviewed := now

	updated.SRSLevel = &level
	updated.NextReview = &next
	updated.LastReviewed = &reviewed

	return updated
}

// isDue reports whether the word should be reviewed at now.
// Words without SRS state are always due.
func isDue(word *domain.Word, now time.Time) bool {
	if word.SRSLevel == nil || word.NextReview == nil {
		return true
	}
	return !word.NextReview.After(now)
}
