package api

import (
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/quiz"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
	"github.com/google/uuid"
)

// CreateWordRequest is the payload for POST /words.
type CreateWordRequest struct {
	SourceText         string `json:"source_text"         validate:"required,max=200"`
	TargetText         string `json:"target_text"         validate:"required,max=200"`
	Category           string `json:"category"            validate:"omitempty,max=32"`
	Example            string `json:"example"             validate:"max=500"`
	ExampleTranslation string `json:"example_translation" validate:"max=500"`
}

// UpdateWordRequest is the payload for PUT /words/{id}. Omitted fields are
// left unchanged.
type UpdateWordRequest struct {
	SourceText         *string `json:"source_text"         validate:"omitempty,max=200"`
	TargetText         *string `json:"target_text"         validate:"omitempty,max=200"`
	Category           *string `json:"category"            validate:"omitempty,max=32"`
	Example            *string `json:"example"             validate:"omitempty,max=500"`
	ExampleTranslation *string `json:"example_translation" validate:"omitempty,max=500"`
	IsUnknown          *bool   `json:"is_unknown"`
}

// FlashcardRequest is the payload for POST /words/{id}/flashcard.
type FlashcardRequest struct {
	Known *bool `json:"known" validate:"required"`
}

// UnknownRequest is the payload for POST /words/{id}/unknown.
type UnknownRequest struct {
	Unknown *bool `json:"unknown" validate:"required"`
}

// GradeRequest is the payload for POST /review/{id}.
type GradeRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// StartQuizRequest is the payload for POST /quizzes.
type StartQuizRequest struct {
	Count     int    `json:"count"     validate:"omitempty,min=1,max=100"`
	Direction string `json:"direction" validate:"omitempty,oneof=forward reverse"`
	Mode      string `json:"mode"      validate:"omitempty,oneof=multiple_choice typed"`
	Category  string `json:"category"  validate:"omitempty,max=32"`
}

// AnswerRequest is the payload for POST /quizzes/{id}/answers. An empty
// answer is accepted and graded as wrong.
type AnswerRequest struct {
	Answer string `json:"answer" validate:"max=500"`
}

// WordResponse is the client view of a word.
type WordResponse struct {
	ID                 uuid.UUID       `json:"id"`
	SourceText         string          `json:"source_text"`
	TargetText         string          `json:"target_text"`
	Category           domain.Category `json:"category"`
	CategoryLabel      string          `json:"category_label"`
	Example            string          `json:"example,omitempty"`
	ExampleTranslation string          `json:"example_translation,omitempty"`
	IsUnknown          bool            `json:"is_unknown"`
	TimesReviewed      int             `json:"times_reviewed"`
	SRSLevel           *int            `json:"srs_level,omitempty"`
	NextReview         *time.Time      `json:"next_review,omitempty"`
	LastReviewed       *time.Time      `json:"last_reviewed,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// WordListResponse is the body of GET /words.
type WordListResponse struct {
	Words  []WordResponse `json:"words"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// QuestionResponse is a quiz question without its answer.
type QuestionResponse struct {
	WordID   uuid.UUID       `json:"word_id"`
	Prompt   string          `json:"prompt"`
	Options  []string        `json:"options,omitempty"`
	Category domain.Category `json:"category"`
}

// QuizSessionResponse is the client view of a quiz session. Only the
// current question is exposed while the quiz runs.
type QuizSessionResponse struct {
	ID        uuid.UUID         `json:"id"`
	Direction quiz.Direction    `json:"direction"`
	Mode      quiz.Mode         `json:"mode"`
	Category  domain.Category   `json:"category,omitempty"`
	State     quiz.SessionState `json:"state"`
	Total     int               `json:"total"`
	Current   int               `json:"current"`
	Question  *QuestionResponse `json:"question,omitempty"`
	Score     *quiz.Score       `json:"score,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// AnswerResponse is the body of POST /quizzes/{id}/answers.
type AnswerResponse struct {
	Correct       bool              `json:"correct"`
	CorrectAnswer string            `json:"correct_answer"`
	Complete      bool              `json:"complete"`
	Next          *QuestionResponse `json:"next,omitempty"`
	Score         *quiz.Score       `json:"score,omitempty"`
}

// ImportResponse is the body of POST /words/import.
type ImportResponse struct {
	service.ImportResult
	SkippedLines []int `json:"skipped_lines,omitempty"`
}

func wordToResponse(w *domain.Word) WordResponse {
	return WordResponse{
		ID:                 w.ID,
		SourceText:         w.SourceText,
		TargetText:         w.TargetText,
		Category:           w.Category,
		CategoryLabel:      w.Category.Label(),
		Example:            w.Example,
		ExampleTranslation: w.ExampleTranslation,
		IsUnknown:          w.IsUnknown,
		TimesReviewed:      w.TimesReviewed,
		SRSLevel:           w.SRSLevel,
		NextReview:         w.NextReview,
		LastReviewed:       w.LastReviewed,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

func wordsToResponse(words []*domain.Word) []WordResponse {
	out := make([]WordResponse, 0, len(words))
	for _, w := range words {
		out = append(out, wordToResponse(w))
	}
	return out
}

func questionToResponse(q *quiz.Question) *QuestionResponse {
	if q == nil {
		return nil
	}
	return &QuestionResponse{
		WordID:   q.WordID,
		Prompt:   q.Prompt,
		Options:  q.Options,
		Category: q.Category,
	}
}

func sessionToResponse(s *quiz.Session) QuizSessionResponse {
	resp := QuizSessionResponse{
		ID:        s.ID,
		Direction: s.Direction,
		Mode:      s.Mode,
		Category:  s.Category,
		State:     s.State,
		Total:     len(s.Questions),
		Current:   s.Current,
		Score:     s.Score,
		CreatedAt: s.CreatedAt,
	}
	if s.State == quiz.SessionInProgress && s.Current < len(s.Questions) {
		resp.Question = questionToResponse(&s.Questions[s.Current])
	}
	return resp
}

func answerToResponse(res *service.AnswerResult) AnswerResponse {
	return AnswerResponse{
		Correct:       res.Correct,
		CorrectAnswer: res.CorrectAnswer,
		Complete:      res.Complete,
		Next:          questionToResponse(res.Next),
		Score:         res.Score,
	}
}
