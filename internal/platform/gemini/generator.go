package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/config"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/generation"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 2 * time.Second
)

// contentGenerator is the subset of *genai.Models used by Generator.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger     *slog.Logger
	models     contentGenerator
	model      string
	maxRetries int
	backoff    time.Duration
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini client from cfg.
// The API key and model name are required.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, client.Models, cfg), nil
}

func newGenerator(logger *slog.Logger, models contentGenerator, cfg config.LLMConfig) *Generator {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	backoff := time.Duration(cfg.RetryBackoffSeconds) * time.Second
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return &Generator{
		logger:     logger.With(slog.String("component", "gemini_generator")),
		models:     models,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// GenerateExample asks the model for an example sentence using word.
func (g *Generator) GenerateExample(ctx context.Context, word *domain.Word) (*generation.Example, error) {
	prompt, err := buildPrompt(word)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	log := g.logger.With(slog.String("word_id", word.ID.String()))
	log.DebugContext(ctx, "requesting example sentence", slog.Int("prompt_length", len(prompt)))

	text, err := g.callWithRetry(ctx, log, prompt)
	if err != nil {
		return nil, err
	}

	example, err := parseExample(text)
	if err != nil {
		log.WarnContext(ctx, "unusable model reply", slog.String("error", err.Error()))
		return nil, err
	}

	log.InfoContext(ctx, "example sentence generated")
	return example, nil
}

// callWithRetry returns the reply text. Transient failures are retried up to
// maxRetries times with delay backoff * 2^attempt * [0.5, 1.0).
func (g *Generator) callWithRetry(ctx context.Context, log *slog.Logger, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.7),
	}

	for attempt := 0; ; attempt++ {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err == nil {
			return responseText(resp)
		}

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		if !isTransient(err) {
			log.ErrorContext(ctx, "Gemini API call failed permanently",
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
			return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		}
		if attempt >= g.maxRetries {
			log.WarnContext(ctx, "maximum retry attempts reached", slog.Int("max_retries", g.maxRetries))
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, g.maxRetries, err)
		}

		delay := time.Duration(float64(g.backoff) * math.Pow(2, float64(attempt)) * (0.5 + rand.Float64()*0.5))
		log.InfoContext(ctx, "retrying Gemini API call",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// isTransient reports whether err is worth retrying. API errors are
// transient only for rate limiting and server-side failures; anything
// else (network errors, timeouts) is assumed transient.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Code >= http.StatusInternalServerError
	}
	return true
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// parseExample decodes the model's JSON reply. Markdown code fences are
// tolerated because models add them despite the JSON MIME type.
func parseExample(text string) (*generation.Example, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var example generation.Example
	if err := json.Unmarshal([]byte(text), &example); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	example.Text = strings.TrimSpace(example.Text)
	example.Translation = strings.TrimSpace(example.Translation)

	if err := example.Validate(); err != nil {
		return nil, fmt.Errorf("%w: example or translation missing", err)
	}
	return &example, nil
}
