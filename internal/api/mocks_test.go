package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/api/shared"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/progress"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/quiz"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type mockWordService struct {
	addWordFn         func(ctx context.Context, content domain.WordContent) (*domain.Word, error)
	getWordFn         func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	listWordsFn       func(ctx context.Context, filter store.WordFilter) ([]*domain.Word, int, error)
	updateWordFn      func(ctx context.Context, id uuid.UUID, update service.WordUpdate) (*domain.Word, error)
	deleteWordFn      func(ctx context.Context, id uuid.UUID) error
	setUnknownFn      func(ctx context.Context, id uuid.UUID, unknown bool) (*domain.Word, error)
	recordFlashcardFn func(ctx context.Context, id uuid.UUID, known bool) (*domain.Word, error)
	categoriesFn      func(ctx context.Context) ([]service.CategorySummary, error)
	importFn          func(ctx context.Context, contents []domain.WordContent) (*service.ImportResult, error)
}

var _ service.WordService = (*mockWordService)(nil)

func (m *mockWordService) AddWord(ctx context.Context, content domain.WordContent) (*domain.Word, error) {
	return m.addWordFn(ctx, content)
}

func (m *mockWordService) GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return m.getWordFn(ctx, id)
}

func (m *mockWordService) ListWords(ctx context.Context, filter store.WordFilter) ([]*domain.Word, int, error) {
	return m.listWordsFn(ctx, filter)
}

func (m *mockWordService) UpdateWord(ctx context.Context, id uuid.UUID, update service.WordUpdate) (*domain.Word, error) {
	return m.updateWordFn(ctx, id, update)
}

func (m *mockWordService) DeleteWord(ctx context.Context, id uuid.UUID) error {
	return m.deleteWordFn(ctx, id)
}

func (m *mockWordService) SetUnknown(ctx context.Context, id uuid.UUID, unknown bool) (*domain.Word, error) {
	return m.setUnknownFn(ctx, id, unknown)
}

func (m *mockWordService) RecordFlashcard(ctx context.Context, id uuid.UUID, known bool) (*domain.Word, error) {
	return m.recordFlashcardFn(ctx, id, known)
}

func (m *mockWordService) Categories(ctx context.Context) ([]service.CategorySummary, error) {
	return m.categoriesFn(ctx)
}

func (m *mockWordService) SeedIfEmpty(context.Context) (int, error) {
	panic("SeedIfEmpty is not served over HTTP")
}

func (m *mockWordService) Import(ctx context.Context, contents []domain.WordContent) (*service.ImportResult, error) {
	return m.importFn(ctx, contents)
}

func (m *mockWordService) SetGeneratedExample(context.Context, uuid.UUID, string, string) (bool, error) {
	panic("SetGeneratedExample is not served over HTTP")
}

type mockReviewService struct {
	dueFn   func(ctx context.Context, now time.Time) ([]*domain.Word, error)
	gradeFn func(ctx context.Context, id uuid.UUID, correct bool) (*domain.Word, error)
}

func (m *mockReviewService) Due(ctx context.Context, now time.Time) ([]*domain.Word, error) {
	return m.dueFn(ctx, now)
}

func (m *mockReviewService) Grade(ctx context.Context, id uuid.UUID, correct bool) (*domain.Word, error) {
	return m.gradeFn(ctx, id, correct)
}

type mockQuizService struct {
	startFn   func(ctx context.Context, req service.QuizRequest) (*quiz.Session, error)
	sessionFn func(ctx context.Context, id uuid.UUID) (*quiz.Session, error)
	answerFn  func(ctx context.Context, id uuid.UUID, answer string) (*service.AnswerResult, error)
	finishFn  func(ctx context.Context, id uuid.UUID) (*quiz.Score, error)
}

func (m *mockQuizService) Start(ctx context.Context, req service.QuizRequest) (*quiz.Session, error) {
	return m.startFn(ctx, req)
}

func (m *mockQuizService) Session(ctx context.Context, id uuid.UUID) (*quiz.Session, error) {
	return m.sessionFn(ctx, id)
}

func (m *mockQuizService) Answer(ctx context.Context, id uuid.UUID, answer string) (*service.AnswerResult, error) {
	return m.answerFn(ctx, id, answer)
}

func (m *mockQuizService) Finish(ctx context.Context, id uuid.UUID) (*quiz.Score, error) {
	return m.finishFn(ctx, id)
}

type mockProgressService struct {
	snapshotFn func(ctx context.Context) (progress.Progress, error)
}

func (m *mockProgressService) Snapshot(ctx context.Context) (progress.Progress, error) {
	return m.snapshotFn(ctx)
}

func (m *mockProgressService) RecordStudy(context.Context, time.Time) (progress.Progress, error) {
	panic("RecordStudy is not served over HTTP")
}

func (m *mockProgressService) RecordQuiz(context.Context, time.Time) (progress.Progress, error) {
	panic("RecordQuiz is not served over HTTP")
}

// serve routes a single request through a chi router so that path
// parameters resolve the same way they do in the server.
func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, w).Error
}

func makeWord(source, target string, category domain.Category) *domain.Word {
	level := 0
	next := testNow
	return &domain.Word{
		ID: uuid.New(),
		WordContent: domain.WordContent{
			SourceText: source,
			TargetText: target,
			Category:   category,
		},
		SRSLevel:   &level,
		NextReview: &next,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
}
