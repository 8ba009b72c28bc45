package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
	"github.com/Husniddin989/rustili-lug-at/internal/events"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

// MockWordRepository mocks the WordRepository interface. WithTx returns the
// same mock so expectations cover transactional calls too.
type MockWordRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockWordRepository) Create(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) CreateBatch(ctx context.Context, words []*domain.Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}

func (m *MockWordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	args := m.Called(ctx, id)
	word, _ := args.Get(0).(*domain.Word)
	return word, args.Error(1)
}

func (m *MockWordRepository) List(ctx context.Context, filter store.WordFilter) ([]*domain.Word, int, error) {
	args := m.Called(ctx, filter)
	words, _ := args.Get(0).([]*domain.Word)
	return words, args.Int(1), args.Error(2)
}

func (m *MockWordRepository) Count(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockWordRepository) Update(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) UpdateSRS(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordRepository) WithTx(*sql.Tx) WordRepository {
	return m
}

func (m *MockWordRepository) DB() *sql.DB {
	return m.db
}

// MockProgressRepository mocks the ProgressRepository interface.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context) (progress.Progress, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(progress.Progress)
	return p, args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, p progress.Progress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgressRepository) WithTx(*sql.Tx) ProgressRepository {
	return m
}

// recordingEmitter collects emitted events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.TaskRequestEvent
	err    error
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.TaskRequestEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) emitted() []*events.TaskRequestEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*events.TaskRequestEvent(nil), e.events...)
}

// newMockRepos returns repositories backed by a sqlmock connection for
// transactions.
func newMockRepos(t *testing.T) (*MockWordRepository, *MockProgressRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &MockWordRepository{db: db}, &MockProgressRepository{}, sqlMock
}

func makeWord(source, target string, category domain.Category) *domain.Word {
	return &domain.Word{
		ID: uuid.New(),
		WordContent: domain.WordContent{
			SourceText: source,
			TargetText: target,
			Category:   category,
		},
		CreatedAt: testNow.Add(-24 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
}

func scheduled(w *domain.Word, level int, next time.Time) *domain.Word {
	w.SRSLevel = &level
	w.NextReview = &next
	return w
}

func fixedClock() time.Time { return testNow }
