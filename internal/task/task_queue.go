package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// TaskQueue buffers tasks for the worker pool. Enqueue fails fast instead
// of blocking when the buffer is full; a task rejected that way stays
// pending in the store and is picked up by the next recovery.
type TaskQueue struct {
	logger *slog.Logger

	mu     sync.RWMutex
	ch     chan Task
	closed bool
}

// NewTaskQueue creates a queue holding up to size tasks (at least one).
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskQueue{ch: make(chan Task, max(size, 1)), logger: logger}
}

// Enqueue implements TaskQueueWriter.
func (q *TaskQueue) Enqueue(t Task) error {
	// The read lock keeps Close from closing ch under a concurrent send.
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- t:
	default:
		return fmt.Errorf("%w (capacity %d)", ErrQueueFull, cap(q.ch))
	}
	q.logger.Debug("task enqueued",
		slog.String("task_id", t.ID().String()),
		slog.String("task_type", t.Type()),
		slog.Int("queued", len(q.ch)))
	return nil
}

// Close stops accepting tasks and lets workers drain what is buffered.
// Calling it again is a no-op.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
	q.logger.Info("task queue closed")
}

// GetChannel implements TaskQueueReader.
func (q *TaskQueue) GetChannel() <-chan Task {
	return q.ch
}

var (
	_ TaskQueueReader = (*TaskQueue)(nil)
	_ TaskQueueWriter = (*TaskQueue)(nil)
)
