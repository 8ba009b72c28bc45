package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	received []*TaskRequestEvent
	err      error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *TaskRequestEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func TestNewTaskRequestEvent(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	event, err := NewTaskRequestEvent(TypeExampleGeneration, ExampleGenerationPayload{WordID: wordID})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeExampleGeneration, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var payload ExampleGenerationPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, wordID, payload.WordID)

	_, err = NewTaskRequestEvent("bad", make(chan int))
	assert.Error(t, err, "unmarshalable payloads are rejected")
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T, eventType string) *TaskRequestEvent {
		t.Helper()
		event, err := NewTaskRequestEvent(eventType, map[string]string{"key": "value"})
		require.NoError(t, err)
		return event
	}

	t.Run("no handlers is not an error", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t, TypeExampleGeneration)))
	})

	t.Run("routes by event type", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		generation := &recordingHandler{}
		other := &recordingHandler{}
		emitter.RegisterHandler(TypeExampleGeneration, generation)
		emitter.RegisterHandler("other", other)

		event := newEvent(t, TypeExampleGeneration)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		require.Len(t, generation.received, 1)
		assert.Same(t, event, generation.received[0])
		assert.Empty(t, other.received)
	})

	t.Run("failing handler does not stop the others", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		failing := &recordingHandler{err: errors.New("handler error")}
		succeeding := &recordingHandler{}
		emitter.RegisterHandler(TypeExampleGeneration, failing)
		emitter.RegisterHandler(TypeExampleGeneration, succeeding)

		err := emitter.EmitEvent(context.Background(), newEvent(t, TypeExampleGeneration))
		assert.EqualError(t, err, "handler error")
		assert.Len(t, failing.received, 1)
		assert.Len(t, succeeding.received, 1)
	})

	t.Run("handler func adapter", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		calls := 0
		emitter.RegisterHandler("ping", HandlerFunc(func(context.Context, *TaskRequestEvent) error {
			calls++
			return nil
		}))
		require.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t, "ping")))
		assert.Equal(t, 1, calls)
	})
}

func TestNopEmitter(t *testing.T) {
	t.Parallel()
	var emitter EventEmitter = NopEmitter{}
	assert.NoError(t, emitter.EmitEvent(context.Background(), &TaskRequestEvent{}))
}
