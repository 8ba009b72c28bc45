package srs

import (
	"testing"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWord(source, target string) *domain.Word {
	return &domain.Word{
		ID: uuid.New(),
		WordContent: domain.WordContent{
			SourceText: source,
			TargetText: target,
			Category:   domain.CategoryNoun,
		},
	}
}

func TestNewDefaultService(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err, "Failed to create SRS service")
	require.NotNil(t, service)

	defaultSvc, ok := service.(*defaultService)
	require.True(t, ok, "Expected *defaultService type")
	assert.NotNil(t, defaultSvc.params)
	assert.Equal(t, 5, service.MaxLevel())
}

func TestNewServiceWithParams_Invalid(t *testing.T) {
	t.Parallel()
	_, err := NewServiceWithParams(&Params{IntervalDays: []int{0}, LevelLabels: nil})
	assert.ErrorIs(t, err, ErrLabelMismatch)
}

func TestInitialize(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC)

	t.Run("fresh word gets level 0 due now", func(t *testing.T) {
		t.Parallel()
		word := newTestWord("стол", "stol")

		initialized := service.Initialize(word, now)

		require.NotNil(t, initialized.SRSLevel)
		assert.Equal(t, 0, *initialized.SRSLevel)
		assert.Equal(t, now, *initialized.NextReview)
		assert.Nil(t, initialized.LastReviewed)
		assert.Nil(t, word.SRSLevel, "input must not be mutated")
	})

	t.Run("scheduled word is returned unchanged", func(t *testing.T) {
		t.Parallel()
		word := newTestWord("окно", "deraza")
		level := 4
		next := now.AddDate(0, 0, 10)
		last := now.AddDate(0, 0, -4)
		word.SRSLevel = &level
		word.NextReview = &next
		word.LastReviewed = &last

		initialized := service.Initialize(word, now)

		assert.Same(t, word, initialized)
		assert.Equal(t, 4, *initialized.SRSLevel)
	})

	t.Run("word with a level but no next review is left alone", func(t *testing.T) {
		t.Parallel()
		word := newTestWord("дверь", "eshik")
		level := 3
		word.SRSLevel = &level

		initialized := service.Initialize(word, now)

		assert.Same(t, word, initialized)
		assert.Nil(t, initialized.NextReview, "still due through SelectDue")
	})
}

func TestRecordOutcome_AllLevels(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC)
	intervals := NewDefaultParams().IntervalDays

	for level := 0; level <= 5; level++ {
		word := newTestWord("слово", "so'z")
		l := level
		word.SRSLevel = &l
		word.NextReview = &now

		success := service.RecordOutcome(word, true, now)
		expectedLevel := level + 1
		if expectedLevel > 5 {
			expectedLevel = 5
		}
		assert.Equal(t, expectedLevel, *success.SRSLevel, "success from level %d", level)
		assert.Equal(t, now.AddDate(0, 0, intervals[expectedLevel]), *success.NextReview)
		assert.Equal(t, now, *success.LastReviewed)

		failure := service.RecordOutcome(word, false, now)
		assert.Equal(t, 0, *failure.SRSLevel, "failure from level %d", level)
		assert.Equal(t, now, *failure.NextReview)
		assert.Equal(t, now, *failure.LastReviewed)
	}
}

func TestRecordOutcome_UnscheduledWord(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC)

	updated := service.RecordOutcome(newTestWord("вода", "suv"), true, now)

	assert.Equal(t, 1, *updated.SRSLevel)
	assert.Equal(t, now.AddDate(0, 0, 1), *updated.NextReview)
}

func TestSelectDue(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	level := 2

	unscheduled := newTestWord("a", "a")
	overdue := newTestWord("b", "b")
	overdue.SRSLevel, overdue.NextReview = &level, &past
	upcoming := newTestWord("c", "c")
	upcoming.SRSLevel, upcoming.NextReview = &level, &future
	dueNow := newTestWord("d", "d")
	dueNow.SRSLevel, dueNow.NextReview = &level, &now

	words := []*domain.Word{upcoming, overdue, unscheduled, dueNow}

	due := service.SelectDue(words, now)
	assert.Equal(t, []*domain.Word{overdue, unscheduled, dueNow}, due, "order preserved")

	again := service.SelectDue(words, now)
	assert.Equal(t, due, again, "re-evaluating with the same now yields the same set")

	assert.Empty(t, service.SelectDue(nil, now))
}

func TestLevelLabel(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)

	testCases := []struct {
		level    int
		expected string
	}{
		{0, "New"},
		{1, "1 day"},
		{2, "3 days"},
		{3, "Week"},
		{4, "2 weeks"},
		{5, "Month"},
		{6, "New"},
		{-1, "New"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, service.LevelLabel(tc.level), "level %d", tc.level)
	}

	assert.Equal(t, 30, service.IntervalDays(99))
	assert.Equal(t, 0, service.IntervalDays(-1))
}
