package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Husniddin989/rustili-lug-at/internal/api/shared"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/quiz"
	"github.com/Husniddin989/rustili-lug-at/internal/redact"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps service, store and domain errors to HTTP statuses.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, quiz.ErrSessionNotActive):
		return http.StatusConflict

	case errors.Is(err, quiz.ErrInsufficientPool):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, quiz.ErrInvalidDirection),
		errors.Is(err, quiz.ErrInvalidMode):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to the client.
// Validation messages come from domain sentinels and are passed through
// redacted; everything else gets a fixed text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, service.ErrSessionNotFound):
		return "Quiz session not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Word already exists"
	case errors.Is(err, quiz.ErrSessionNotActive):
		return "Quiz session is not in progress"
	case errors.Is(err, quiz.ErrInsufficientPool):
		return "At least 4 words are needed to start a quiz"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, quiz.ErrInvalidDirection),
		errors.Is(err, quiz.ErrInvalidMode):
		return validationMessage(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid word data"
	default:
		return "An unexpected error occurred"
	}
}

// validationMessage drops the generic "validation failed: " prefix.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	return redact.String(msg)
}

// HandleAPIError maps err and writes the error response. A non-empty
// fallback replaces the generic message for internal errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe))
}

func validationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "validation failed"
	}
}
