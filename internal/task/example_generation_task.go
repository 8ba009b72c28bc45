package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/generation"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilWordService = errors.New("word service cannot be nil")
	ErrNilGenerator   = errors.New("generator cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrEmptyWordID    = errors.New("word ID cannot be empty")
)

// WordExampleService is the part of the word service the example task uses.
type WordExampleService interface {
	// GetWord retrieves a word by its ID.
	GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// SetGeneratedExample stores the example only if the word still has
	// none, and reports whether it did.
	SetGeneratedExample(ctx context.Context, id uuid.UUID, example, translation string) (bool, error)
}

type exampleGenerationPayload struct {
	WordID uuid.UUID `json:"word_id"`
}

// ExampleGenerationTask asks the generator for an example sentence and
// attaches it to a word that has none.
type ExampleGenerationTask struct {
	id          uuid.UUID
	wordID      uuid.UUID
	wordService WordExampleService
	generator   generation.Generator
	logger      *slog.Logger
	status      TaskStatus
}

// NewExampleGenerationTask creates a pending task with a fresh ID.
func NewExampleGenerationTask(
	wordID uuid.UUID,
	wordService WordExampleService,
	generator generation.Generator,
	logger *slog.Logger,
) (*ExampleGenerationTask, error) {
	return newExampleGenerationTask(uuid.New(), wordID, wordService, generator, logger)
}

func newExampleGenerationTask(
	id uuid.UUID,
	wordID uuid.UUID,
	wordService WordExampleService,
	generator generation.Generator,
	logger *slog.Logger,
) (*ExampleGenerationTask, error) {
	if wordService == nil {
		return nil, ErrNilWordService
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if wordID == uuid.Nil {
		return nil, ErrEmptyWordID
	}

	return &ExampleGenerationTask{
		id:          id,
		wordID:      wordID,
		wordService: wordService,
		generator:   generator,
		logger: logger.With(
			slog.String("task_type", TaskTypeExampleGeneration),
			slog.String("task_id", id.String()),
			slog.String("word_id", wordID.String()),
		),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ExampleGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ExampleGenerationTask) Type() string {
	return TaskTypeExampleGeneration
}

// Payload returns the JSON-encoded word ID.
func (t *ExampleGenerationTask) Payload() []byte {
	data, err := json.Marshal(exampleGenerationPayload{WordID: t.wordID})
	if err != nil {
		t.logger.Error("failed to marshal task payload", slog.String("error", err.Error()))
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *ExampleGenerationTask) Status() TaskStatus {
	return t.status
}

// WordID returns the word this task writes an example for.
func (t *ExampleGenerationTask) WordID() uuid.UUID {
	return t.wordID
}

// Execute loads the word, generates an example if it still lacks one and
// saves it. A word that was deleted or edited in the meantime is not an error.
func (t *ExampleGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	word, err := t.wordService.GetWord(ctx, t.wordID)
	if err != nil {
		if store.IsNotFoundError(err) {
			t.logger.Info("word no longer exists, skipping example generation")
			t.status = TaskStatusCompleted
			return nil
		}
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to retrieve word: %w", err)
	}

	if strings.TrimSpace(word.Example) != "" {
		t.logger.Debug("word already has an example")
		t.status = TaskStatusCompleted
		return nil
	}

	example, err := t.generator.GenerateExample(ctx, word)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to generate example: %w", err)
	}
	if err := example.Validate(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("generator returned unusable example: %w", err)
	}

	updated, err := t.wordService.SetGeneratedExample(ctx, t.wordID, example.Text, example.Translation)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to save generated example: %w", err)
	}

	if updated {
		t.logger.Info("example generated and saved")
	} else {
		t.logger.Info("word received an example while generating, discarding result")
	}
	t.status = TaskStatusCompleted
	return nil
}

// ExampleGenerationTaskFactory creates and restores ExampleGenerationTask values.
type ExampleGenerationTaskFactory struct {
	wordService WordExampleService
	generator   generation.Generator
	logger      *slog.Logger
}

// NewExampleGenerationTaskFactory creates a new factory for ExampleGenerationTasks
func NewExampleGenerationTaskFactory(
	wordService WordExampleService,
	generator generation.Generator,
	logger *slog.Logger,
) *ExampleGenerationTaskFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExampleGenerationTaskFactory{
		wordService: wordService,
		generator:   generator,
		logger:      logger.With(slog.String("component", "example_generation_task_factory")),
	}
}

// CreateTask creates a new task for the given word.
func (f *ExampleGenerationTaskFactory) CreateTask(wordID uuid.UUID) (Task, error) {
	return NewExampleGenerationTask(wordID, f.wordService, f.generator, f.logger)
}

// Restore rebuilds a persisted task, keeping its ID.
func (f *ExampleGenerationTaskFactory) Restore(id uuid.UUID, payload []byte) (Task, error) {
	var p exampleGenerationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return newExampleGenerationTask(id, p.WordID, f.wordService, f.generator, f.logger)
}

// Register installs the factory's restore function in registry.
func (f *ExampleGenerationTaskFactory) Register(registry *Registry) {
	registry.Register(TaskTypeExampleGeneration, f.Restore)
}
