package task

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/events"
	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskTypeExampleGeneration fills in a missing example sentence for a word.
const TaskTypeExampleGeneration = events.TypeExampleGeneration

// ErrNotRestored is returned when a StoredTask is executed directly instead
// of being rebuilt through a Registry.
var ErrNotRestored = errors.New("stored task has no executable form")

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// TaskQueueReader provides read-only access to queued tasks.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter lets producers enqueue tasks.
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing.
	// Returns ErrQueueFull or ErrQueueClosed.
	Enqueue(task Task) error

	// Close prevents further submissions.
	Close()
}

// TaskStore defines the interface for persisting tasks
type TaskStore interface {
	// SaveTask persists a task in its current status.
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus records a status change and an optional error message.
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks retrieves all tasks with "pending" status, oldest first.
	GetPendingTasks(ctx context.Context) ([]Task, error)

	// GetProcessingTasks retrieves tasks with "processing" status.
	// A non-zero olderThan keeps only tasks untouched for at least that long.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error)

	// WithTx returns a TaskStore bound to tx.
	WithTx(tx *sql.Tx) TaskStore
}

// StoredTask is a task as loaded from a TaskStore: data without behaviour.
// A Registry turns it back into an executable task.
type StoredTask struct {
	TaskID       uuid.UUID
	TaskType     string
	Data         []byte
	TaskStatus   TaskStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ID returns the task's unique identifier
func (t *StoredTask) ID() uuid.UUID { return t.TaskID }

// Type returns the task type identifier
func (t *StoredTask) Type() string { return t.TaskType }

// Payload returns the task data as a byte slice
func (t *StoredTask) Payload() []byte { return t.Data }

// Status returns the status recorded in the store
func (t *StoredTask) Status() TaskStatus { return t.TaskStatus }

// Execute always fails; see Registry.Restore.
func (t *StoredTask) Execute(context.Context) error { return ErrNotRestored }
