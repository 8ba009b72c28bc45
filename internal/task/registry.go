package task

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// RestoreFunc rebuilds an executable task from its persisted ID and payload.
type RestoreFunc func(id uuid.UUID, payload []byte) (Task, error)

// Registry maps task types to the functions that restore them after a
// restart or a stuck-task reset.
type Registry struct {
	mu        sync.RWMutex
	restorers map[string]RestoreFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{restorers: make(map[string]RestoreFunc)}
}

// Register sets the restore function for taskType, replacing any previous one.
func (r *Registry) Register(taskType string, fn RestoreFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restorers[taskType] = fn
}

// Restore returns an executable version of t. Tasks that are not
// StoredTask values are returned unchanged.
func (r *Registry) Restore(t Task) (Task, error) {
	stored, ok := t.(*StoredTask)
	if !ok {
		return t, nil
	}

	r.mu.RLock()
	fn, found := r.restorers[stored.TaskType]
	r.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("no restorer registered for task type %q", stored.TaskType)
	}

	restored, err := fn(stored.TaskID, stored.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to restore %s task %s: %w", stored.TaskType, stored.TaskID, err)
	}
	return restored, nil
}
