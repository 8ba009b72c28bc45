package task

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/generation"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTask is a Task whose Execute is provided by the test.
type stubTask struct {
	id        uuid.UUID
	taskType  string
	payload   []byte
	executeFn func(ctx context.Context) error
}

func newStubTask(executeFn func(ctx context.Context) error) *stubTask {
	return &stubTask{id: uuid.New(), taskType: "stub", payload: []byte(`{}`), executeFn: executeFn}
}

func (t *stubTask) ID() uuid.UUID      { return t.id }
func (t *stubTask) Type() string       { return t.taskType }
func (t *stubTask) Payload() []byte    { return t.payload }
func (t *stubTask) Status() TaskStatus { return TaskStatusPending }
func (t *stubTask) Execute(ctx context.Context) error {
	if t.executeFn == nil {
		return nil
	}
	return t.executeFn(ctx)
}

// memoryTaskStore keeps task records in a map and hands back StoredTask
// values, like the postgres store does.
type memoryTaskStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*StoredTask
	saveErr error
	changed chan uuid.UUID
}

func newMemoryTaskStore() *memoryTaskStore {
	return &memoryTaskStore{
		records: make(map[uuid.UUID]*StoredTask),
		changed: make(chan uuid.UUID, 64),
	}
}

func (s *memoryTaskStore) SaveTask(_ context.Context, t Task) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.records[t.ID()] = &StoredTask{
		TaskID:     t.ID(),
		TaskType:   t.Type(),
		Data:       t.Payload(),
		TaskStatus: t.Status(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return nil
}

func (s *memoryTaskStore) UpdateTaskStatus(_ context.Context, id uuid.UUID, status TaskStatus, msg string) error {
	s.mu.Lock()
	rec, ok := s.records[id]
	if ok {
		rec.TaskStatus = status
		rec.ErrorMessage = msg
		rec.UpdatedAt = time.Now()
	}
	s.mu.Unlock()
	if !ok {
		return store.ErrTaskNotFound
	}
	select {
	case s.changed <- id:
	default:
	}
	return nil
}

func (s *memoryTaskStore) byStatus(status TaskStatus) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Task
	for _, rec := range s.records {
		if rec.TaskStatus == status {
			c := *rec
			out = append(out, &c)
		}
	}
	return out
}

func (s *memoryTaskStore) GetPendingTasks(context.Context) ([]Task, error) {
	return s.byStatus(TaskStatusPending), nil
}

func (s *memoryTaskStore) GetProcessingTasks(context.Context, time.Duration) ([]Task, error) {
	return s.byStatus(TaskStatusProcessing), nil
}

func (s *memoryTaskStore) WithTx(*sql.Tx) TaskStore { return s }

func (s *memoryTaskStore) status(id uuid.UUID) (TaskStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return "", ""
	}
	return rec.TaskStatus, rec.ErrorMessage
}

// waitForStatus blocks until the task reaches want or the timeout passes.
func (s *memoryTaskStore) waitForStatus(id uuid.UUID, want TaskStatus, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		if got, _ := s.status(id); got == want {
			return true
		}
		select {
		case <-s.changed:
		case <-deadline:
			return false
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// stubWordService records example writes.
type stubWordService struct {
	mu       sync.Mutex
	words    map[uuid.UUID]*domain.Word
	getErr   error
	setCalls int
}

func newStubWordService(words ...*domain.Word) *stubWordService {
	s := &stubWordService{words: make(map[uuid.UUID]*domain.Word)}
	for _, w := range words {
		s.words[w.ID] = w
	}
	return s
}

func (s *stubWordService) GetWord(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	w, ok := s.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return w.Clone(), nil
}

func (s *stubWordService) SetGeneratedExample(_ context.Context, id uuid.UUID, example, translation string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	w, ok := s.words[id]
	if !ok {
		return false, store.ErrWordNotFound
	}
	if w.Example != "" {
		return false, nil
	}
	w.Example = example
	w.ExampleTranslation = translation
	return true, nil
}

type stubGenerator struct {
	example *generation.Example
	err     error
	calls   int
}

func (g *stubGenerator) GenerateExample(context.Context, *domain.Word) (*generation.Example, error) {
	g.calls++
	return g.example, g.err
}

func testWord(example string) *domain.Word {
	return &domain.Word{
		ID: uuid.New(),
		WordContent: domain.WordContent{
			SourceText: "книга",
			TargetText: "kitob",
			Category:   domain.CategoryNoun,
			Example:    example,
		},
	}
}
