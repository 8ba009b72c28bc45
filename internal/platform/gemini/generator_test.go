package gemini

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/config"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/generation"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type scriptedReply struct {
	resp *genai.GenerateContentResponse
	err  error
}

// fakeModels replays scripted replies in order and records every prompt.
type fakeModels struct {
	mu      sync.Mutex
	replies []scriptedReply
	prompts []string
	configs []*genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	_ string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	f.configs = append(f.configs, cfg)

	if len(f.replies) == 0 {
		return nil, errors.New("no scripted reply")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.resp, r.err
}

func (f *fakeModels) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.configs)
}

func textReply(text string) scriptedReply {
	return scriptedReply{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}}
}

func newTestGenerator(t *testing.T, models contentGenerator, maxRetries int) *Generator {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	g := newGenerator(log, models, config.LLMConfig{
		ModelName:           "gemini-test",
		MaxRetries:          maxRetries,
		RetryBackoffSeconds: 1,
	})
	g.backoff = time.Millisecond
	return g
}

func testWord(t *testing.T) *domain.Word {
	t.Helper()
	w, err := domain.NewWord(domain.WordContent{
		SourceText: "книга",
		TargetText: "kitob",
		Category:   domain.CategoryNoun,
	}, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return w
}

func TestNewGenerator_Validation(t *testing.T) {
	t.Parallel()
	log, _ := logger.GetTestLogger(t)

	tests := []struct {
		name string
		cfg  config.LLMConfig
	}{
		{"missing api key", config.LLMConfig{ModelName: "gemini-2.0-flash"}},
		{"missing model", config.LLMConfig{GeminiAPIKey: "key"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := NewGenerator(context.Background(), log, tt.cfg)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()
		_, err := NewGenerator(context.Background(), nil, config.LLMConfig{GeminiAPIKey: "k", ModelName: "m"})
		assert.Error(t, err)
	})
}

func TestGenerateExample_Success(t *testing.T) {
	t.Parallel()

	models := &fakeModels{replies: []scriptedReply{
		textReply(`{"example": " Я читаю книгу. ", "example_translation": "Men kitob o'qiyapman."}`),
	}}
	g := newTestGenerator(t, models, 2)

	example, err := g.GenerateExample(context.Background(), testWord(t))
	require.NoError(t, err)
	assert.Equal(t, "Я читаю книгу.", example.Text)
	assert.Equal(t, "Men kitob o'qiyapman.", example.Translation)

	require.Len(t, models.prompts, 1)
	assert.Contains(t, models.prompts[0], `"книга"`)
	assert.Contains(t, models.prompts[0], `"kitob"`)
	assert.Equal(t, "application/json", models.configs[0].ResponseMIMEType)
}

func TestGenerateExample_CodeFence(t *testing.T) {
	t.Parallel()

	models := &fakeModels{replies: []scriptedReply{
		textReply("```json\n{\"example\": \"Привет, друг!\", \"example_translation\": \"Salom, do'stim!\"}\n```"),
	}}
	g := newTestGenerator(t, models, 0)

	example, err := g.GenerateExample(context.Background(), testWord(t))
	require.NoError(t, err)
	assert.Equal(t, "Привет, друг!", example.Text)
}

func TestGenerateExample_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{replies: []scriptedReply{
		{err: genai.APIError{Code: 429, Message: "quota"}},
		{err: errors.New("connection reset")},
		textReply(`{"example": "Это книга.", "example_translation": "Bu kitob."}`),
	}}
	g := newTestGenerator(t, models, 3)

	example, err := g.GenerateExample(context.Background(), testWord(t))
	require.NoError(t, err)
	assert.Equal(t, "Это книга.", example.Text)
	assert.Equal(t, 3, models.calls())
}

func TestGenerateExample_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		replies   []scriptedReply
		wantErr   error
		wantCalls int
	}{
		{
			name: "retries exhausted",
			replies: []scriptedReply{
				{err: genai.APIError{Code: 503}},
				{err: genai.APIError{Code: 500}},
			},
			wantErr:   generation.ErrTransientFailure,
			wantCalls: 2,
		},
		{
			name:      "client error is permanent",
			replies:   []scriptedReply{{err: genai.APIError{Code: 400, Message: "bad request"}}},
			wantErr:   generation.ErrGenerationFailed,
			wantCalls: 1,
		},
		{
			name: "safety block",
			replies: []scriptedReply{{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}}},
			wantErr:   generation.ErrContentBlocked,
			wantCalls: 1,
		},
		{
			name:      "no candidates",
			replies:   []scriptedReply{{resp: &genai.GenerateContentResponse{}}},
			wantErr:   generation.ErrInvalidResponse,
			wantCalls: 1,
		},
		{
			name:      "malformed json",
			replies:   []scriptedReply{textReply("Here is your sentence: Я дома.")},
			wantErr:   generation.ErrInvalidResponse,
			wantCalls: 1,
		},
		{
			name:      "missing translation",
			replies:   []scriptedReply{textReply(`{"example": "Я дома."}`)},
			wantErr:   generation.ErrInvalidResponse,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			models := &fakeModels{replies: tt.replies}
			g := newTestGenerator(t, models, 1)

			example, err := g.GenerateExample(context.Background(), testWord(t))
			assert.Nil(t, example)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCalls, models.calls())
		})
	}
}

func TestGenerateExample_EmptyWord(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	g := newTestGenerator(t, models, 1)

	_, err := g.GenerateExample(context.Background(), &domain.Word{})
	assert.ErrorIs(t, err, ErrEmptyWord)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.Zero(t, models.calls())
}

func TestGenerateExample_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	models := &fakeModels{replies: []scriptedReply{{err: context.Canceled}}}
	g := newTestGenerator(t, models, 5)

	_, err := g.GenerateExample(ctx, testWord(t))
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Equal(t, 1, models.calls())
}

func TestNewGenerator_Defaults(t *testing.T) {
	t.Parallel()
	log, _ := logger.GetTestLogger(t)

	g := newGenerator(log, &fakeModels{}, config.LLMConfig{ModelName: "m", MaxRetries: -1})
	assert.Equal(t, defaultMaxRetries, g.maxRetries)
	assert.Equal(t, defaultBackoff, g.backoff)
}
