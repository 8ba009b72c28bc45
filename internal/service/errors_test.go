package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewServiceError("op", "msg", nil))

	assert.Same(t, ErrWordNotFound, NewServiceError("get_word", "lookup", fmt.Errorf("wrapped: %w", store.ErrWordNotFound)))
	assert.Same(t, ErrSessionNotFound, NewServiceError("answer", "lookup", ErrSessionNotFound))

	cause := errors.New("connection refused")
	err := NewServiceError("add_word", "failed to save word", cause)

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "add_word", serviceErr.Operation)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "service add_word failed: failed to save word: connection refused", err.Error())
}

func TestServiceError_WithoutCause(t *testing.T) {
	t.Parallel()
	err := &ServiceError{Operation: "create_service", Message: "wordRepo cannot be nil"}
	assert.Equal(t, "service create_service failed: wordRepo cannot be nil", err.Error())
	assert.Nil(t, err.Unwrap())
}
