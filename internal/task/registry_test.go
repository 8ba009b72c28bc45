package task

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Restore(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("stub", func(id uuid.UUID, payload []byte) (Task, error) {
		if string(payload) == "bad" {
			return nil, errors.New("bad payload")
		}
		return &stubTask{id: id, taskType: "stub", payload: payload}, nil
	})

	t.Run("live tasks pass through", func(t *testing.T) {
		t.Parallel()
		live := newStubTask(nil)
		got, err := registry.Restore(live)
		require.NoError(t, err)
		assert.Same(t, live, got)
	})

	t.Run("stored task keeps its ID", func(t *testing.T) {
		t.Parallel()
		stored := &StoredTask{TaskID: uuid.New(), TaskType: "stub", Data: []byte(`{}`)}
		got, err := registry.Restore(stored)
		require.NoError(t, err)
		assert.Equal(t, stored.TaskID, got.ID())
		assert.NoError(t, got.Execute(context.Background()))
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		_, err := registry.Restore(&StoredTask{TaskID: uuid.New(), TaskType: "mystery"})
		assert.ErrorContains(t, err, "no restorer registered")
	})

	t.Run("restore failure", func(t *testing.T) {
		t.Parallel()
		_, err := registry.Restore(&StoredTask{TaskID: uuid.New(), TaskType: "stub", Data: []byte("bad")})
		assert.ErrorContains(t, err, "bad payload")
	})
}

func TestStoredTask_ExecuteFails(t *testing.T) {
	t.Parallel()
	stored := &StoredTask{TaskID: uuid.New(), TaskType: "stub", TaskStatus: TaskStatusPending}
	assert.ErrorIs(t, stored.Execute(context.Background()), ErrNotRestored)
	assert.Equal(t, TaskStatusPending, stored.Status())
}
