package quiz

import (
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/google/uuid"
)

// SessionState is the lifecycle stage of a quiz session.
type SessionState string

// Session states.
const (
	SessionSetup      SessionState = "setup"
	SessionInProgress SessionState = "in_progress"
	SessionComplete   SessionState = "complete"
)

// Session is the caller-held state of one quiz run:
// setup → in_progress → complete.
type Session struct {
	ID        uuid.UUID       `json:"id"`
	Direction Direction       `json:"direction"`
	Mode      Mode            `json:"mode"`
	Category  domain.Category `json:"category,omitempty"`
	State     SessionState    `json:"state"`
	Questions []Question      `json:"questions"`
	Answers   []string        `json:"answers"`
	Current   int             `json:"current"`
	Score     *Score          `json:"score,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewSession creates a session in the setup state.
func NewSession(direction Direction, mode Mode, category domain.Category, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		Direction: direction,
		Mode:      mode,
		Category:  category,
		State:     SessionSetup,
		CreatedAt: now.UTC(),
	}
}

// Start loads the generated questions and moves the session in progress.
func (s *Session) Start(questions []Question) error {
	if s.State != SessionSetup {
		return ErrSessionStarted
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	s.Questions = questions
	s.Answers = make([]string, 0, len(questions))
	s.Current = 0
	s.State = SessionInProgress
	return nil
}

// CurrentQuestion returns the question awaiting an answer, or nil when the
// session is not in progress.
func (s *Session) CurrentQuestion() *Question {
	if s.State != SessionInProgress || s.Current >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Current]
}

// Answer records the answer to the current question and advances.
// Answering the last question grades the session and completes it.
func (s *Session) Answer(answer string) (bool, error) {
	q := s.CurrentQuestion()
	if q == nil {
		return false, ErrSessionNotActive
	}

	correct := CheckAnswer(answer, q.Answer)
	s.Answers = append(s.Answers, answer)
	s.Current++

	if s.Current == len(s.Questions) {
		s.complete()
	}

	return correct, nil
}

// Finish grades the session. Unanswered questions count as wrong.
// Finishing a completed session returns its existing score.
func (s *Session) Finish() (*Score, error) {
	switch s.State {
	case SessionComplete:
		return s.Score, nil
	case SessionInProgress:
		s.complete()
		return s.Score, nil
	default:
		return nil, ErrSessionNotActive
	}
}

// IsComplete reports whether the session has been graded.
func (s *Session) IsComplete() bool {
	return s.State == SessionComplete
}

func (s *Session) complete() {
	score := Grade(s.Answers, s.Questions)
	s.Score = &score
	s.State = SessionComplete
}
