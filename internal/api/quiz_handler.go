package api

import (
	"log/slog"
	"net/http"

	"github.com/Husniddin989/rustili-lug-at/internal/api/shared"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/domain/quiz"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
)

// QuizHandler serves the quiz endpoints. Responses never include the
// answers of questions that are still open.
type QuizHandler struct {
	quizService service.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a QuizHandler. A nil logger uses the default.
func NewQuizHandler(quizService service.QuizService, logger *slog.Logger) *QuizHandler {
	if quizService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("quizService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "quiz_handler")),
	}
}

// StartQuiz handles POST /quizzes.
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartQuizRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	quizReq := service.QuizRequest{
		Count:     req.Count,
		Direction: quiz.Direction(req.Direction),
		Mode:      quiz.Mode(req.Mode),
	}
	if quizReq.Direction == "" {
		quizReq.Direction = quiz.DirectionForward
	}
	if quizReq.Mode == "" {
		quizReq.Mode = quiz.ModeMultipleChoice
	}
	if req.Category != "" {
		category, err := domain.ParseCategory(req.Category)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		quizReq.Category = category
	}

	session, err := h.quizService.Start(r.Context(), quizReq)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start quiz")
		return
	}

	log.Debug("quiz started",
		slog.String("session_id", session.ID.String()),
		slog.Int("questions", len(session.Questions)))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// GetQuiz handles GET /quizzes/{id}.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	session, err := h.quizService.Session(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get quiz")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// SubmitAnswer handles POST /quizzes/{id}/answers.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.quizService.Answer(r.Context(), id, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, answerToResponse(result))
}

// FinishQuiz handles POST /quizzes/{id}/finish.
func (h *QuizHandler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	score, err := h.quizService.Finish(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to finish quiz")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, score)
}
