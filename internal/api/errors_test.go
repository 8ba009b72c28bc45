package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Husniddin989/rustili-lug-at/internal/api/shared"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/quiz"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"word not found", service.ErrWordNotFound, http.StatusNotFound},
		{"wrapped word not found", service.NewServiceError("get_word", "failed", store.ErrWordNotFound), http.StatusNotFound},
		{"session not found", service.ErrSessionNotFound, http.StatusNotFound},
		{"duplicate", store.ErrWordExists, http.StatusConflict},
		{"session finished", fmt.Errorf("answer: %w", quiz.ErrSessionNotActive), http.StatusConflict},
		{"pool too small", quiz.ErrInsufficientPool, http.StatusUnprocessableEntity},
		{"validation", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyTargetText), http.StatusBadRequest},
		{"category", domain.ErrInvalidCategory, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"quiz mode", quiz.ErrInvalidMode, http.StatusBadRequest},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Word not found", GetSafeErrorMessage(service.ErrWordNotFound))
	assert.Equal(t, "word target text cannot be empty",
		GetSafeErrorMessage(fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyTargetText)))
	assert.Equal(t, "At least 4 words are needed to start a quiz", GetSafeErrorMessage(quiz.ErrInsufficientPool))

	internal := errors.New("pq: password=hunter2 rejected for postgres://app:hunter2@db/rustili")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  interface{}
		want string
	}{
		{"required", &GradeRequest{}, "Invalid correct: required field"},
		{"max", &CreateWordRequest{SourceText: string(make([]rune, 201)), TargetText: "x"}, "Invalid source_text: must be at most 200"},
		{"oneof", &StartQuizRequest{Mode: "essay"}, "Invalid mode: must be one of multiple_choice typed"},
		{"min", &StartQuizRequest{Count: -2}, "Invalid count: must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := shared.ValidateRequest(tt.req)
			assert.Equal(t, tt.want, SanitizeValidationError(err))
		})
	}

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}
