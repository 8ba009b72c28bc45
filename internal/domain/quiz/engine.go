// Package quiz builds randomized quizzes from a word pool and grades them.
//
// The engine holds no session state. Randomness comes from an injected
// *rand.Rand so tests can fix the seed; an Engine must not be shared
// between goroutines without external locking.
package quiz

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
)

// Engine generates and grades quizzes.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an Engine that draws from rng.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		panic("rng cannot be nil")
	}
	return &Engine{rng: rng}
}

// ValidWords keeps the words that have both texts, preserving order.
func ValidWords(words []*domain.Word) []*domain.Word {
	valid := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		if w != nil && w.IsQuizEligible() {
			valid = append(valid, w)
		}
	}
	return valid
}

// Generate builds up to count questions from words.
//
// Words missing either text are skipped. Fewer than MinPoolSize valid words
// yields ErrInsufficientPool. A count that is not positive or exceeds the
// pool is clamped to the pool size. Question order is the shuffled word
// order.
func (e *Engine) Generate(words []*domain.Word, count int, direction Direction, mode Mode) ([]Question, error) {
	if direction != DirectionForward && direction != DirectionReverse {
		return nil, ErrInvalidDirection
	}
	if mode != ModeMultipleChoice && mode != ModeTyped {
		return nil, ErrInvalidMode
	}

	valid := ValidWords(words)
	if len(valid) < MinPoolSize {
		return nil, ErrInsufficientPool
	}

	if count <= 0 || count > len(valid) {
		count = len(valid)
	}
	selected := Shuffle(e.rng, valid)[:count]

	questions := make([]Question, 0, count)
	for _, word := range selected {
		prompt, answer := sides(word, direction)
		q := Question{
			WordID:             word.ID,
			Prompt:             prompt,
			Answer:             answer,
			Category:           word.Category,
			Example:            word.Example,
			ExampleTranslation: word.ExampleTranslation,
		}

		if mode == ModeMultipleChoice {
			options := []string{answer}
			for _, d := range e.distractors(word, valid, direction) {
				_, wrong := sides(d, direction)
				options = append(options, wrong)
			}
			q.Options = Shuffle(e.rng, options)
		}

		questions = append(questions, q)
	}

	return questions, nil
}

// distractors draws DistractorCount other words uniformly without
// replacement. Words whose answer text collides with one already chosen are
// passed over while alternatives remain, so options stay distinct whenever
// the pool allows it.
func (e *Engine) distractors(word *domain.Word, pool []*domain.Word, direction Direction) []*domain.Word {
	others := make([]*domain.Word, 0, len(pool)-1)
	for _, w := range pool {
		if w.ID != word.ID {
			others = append(others, w)
		}
	}
	others = Shuffle(e.rng, others)

	_, answer := sides(word, direction)
	seen := map[string]bool{normalize(answer): true}
	picked := make([]*domain.Word, 0, DistractorCount)
	var collisions []*domain.Word

	for _, w := range others {
		if len(picked) == DistractorCount {
			break
		}
		_, text := sides(w, direction)
		key := normalize(text)
		if seen[key] {
			collisions = append(collisions, w)
			continue
		}
		seen[key] = true
		picked = append(picked, w)
	}

	for _, w := range collisions {
		if len(picked) == DistractorCount {
			break
		}
		picked = append(picked, w)
	}

	return picked
}

// normalize folds case and trims surrounding whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckAnswer reports whether userAnswer matches correctAnswer ignoring
// case and surrounding whitespace. An empty answer never matches.
func CheckAnswer(userAnswer, correctAnswer string) bool {
	given := normalize(userAnswer)
	if given == "" {
		return false
	}
	return given == normalize(correctAnswer)
}

// Result is the graded outcome of one question.
type Result struct {
	Prompt    string          `json:"prompt"`
	Given     string          `json:"given"`
	Correct   string          `json:"correct"`
	IsCorrect bool            `json:"is_correct"`
	Category  domain.Category `json:"category"`
	Example   string          `json:"example,omitempty"`
}

// Score summarizes a graded quiz.
type Score struct {
	Total      int      `json:"total"`
	Correct    int      `json:"correct"`
	Wrong      int      `json:"wrong"`
	Percentage int      `json:"percentage"`
	Results    []Result `json:"results"`
}

// Grade scores answers against questions by position.
//
// answers and questions must be aligned and of equal length; that is the
// caller's contract. Extra answers are ignored and missing answers are
// graded as empty.
func Grade(answers []string, questions []Question) Score {
	score := Score{
		Total:   len(questions),
		Results: make([]Result, 0, len(questions)),
	}

	for i, q := range questions {
		var given string
		if i < len(answers) {
			given = answers[i]
		}

		ok := CheckAnswer(given, q.Answer)
		if ok {
			score.Correct++
		} else {
			score.Wrong++
		}

		score.Results = append(score.Results, Result{
			Prompt:    q.Prompt,
			Given:     given,
			Correct:   q.Answer,
			IsCorrect: ok,
			Category:  q.Category,
			Example:   q.Example,
		})
	}

	if score.Total > 0 {
		score.Percentage = int(math.Round(float64(score.Correct) / float64(score.Total) * 100))
	}

	return score
}
