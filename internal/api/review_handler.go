package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Husniddin989/rustili-lug-at/internal/api/shared"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
)

// ReviewHandler serves the spaced repetition endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *slog.Logger
	now           func() time.Time
}

// NewReviewHandler creates a ReviewHandler. A nil logger uses the default.
func NewReviewHandler(reviewService service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
		now:           time.Now,
	}
}

// DueWords handles GET /review/due.
func (h *ReviewHandler) DueWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.reviewService.Due(r.Context(), h.now())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get words due for review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(words))
}

// Grade handles POST /review/{id}.
func (h *ReviewHandler) Grade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req GradeRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	word, err := h.reviewService.Grade(r.Context(), id, *req.Correct)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to grade review")
		return
	}

	log.Debug("review graded",
		slog.String("word_id", id.String()),
		slog.Bool("correct", *req.Correct))
	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}
