package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Husniddin989/rustili-lug-at/internal/api/shared"
	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/Husniddin989/rustili-lug-at/internal/importer"
	"github.com/Husniddin989/rustili-lug-at/internal/platform/logger"
	"github.com/Husniddin989/rustili-lug-at/internal/service"
	"github.com/Husniddin989/rustili-lug-at/internal/store"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500

	// maxImportBytes caps uploaded import files.
	maxImportBytes = 5 << 20

	spreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WordHandler serves the vocabulary endpoints.
type WordHandler struct {
	wordService service.WordService
	logger      *slog.Logger
}

// NewWordHandler creates a WordHandler. A nil logger uses the default.
func NewWordHandler(wordService service.WordService, logger *slog.Logger) *WordHandler {
	if wordService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("wordService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		wordService: wordService,
		logger:      logger.With(slog.String("component", "word_handler")),
	}
}

// ListWords handles GET /words?category=&unknown=&q=&limit=&offset=
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseWordFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	words, total, err := h.wordService.ListWords(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list words")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WordListResponse{
		Words:  wordsToResponse(words),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func parseWordFilter(r *http.Request) (store.WordFilter, error) {
	q := r.URL.Query()
	filter := store.WordFilter{Search: strings.TrimSpace(q.Get("q"))}

	if raw := q.Get("category"); raw != "" {
		category, err := domain.ParseCategory(raw)
		if err != nil {
			return filter, err
		}
		filter.Category = category
	}

	var err error
	if filter.UnknownOnly, err = queryBool(r, "unknown"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(r, "limit", defaultListLimit); err != nil {
		return filter, err
	}
	if filter.Limit == 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		return filter, err
	}
	return filter, nil
}

// CreateWord handles POST /words.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateWordRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	content := domain.WordContent{
		SourceText:         req.SourceText,
		TargetText:         req.TargetText,
		Example:            req.Example,
		ExampleTranslation: req.ExampleTranslation,
	}
	if req.Category != "" {
		category, err := domain.ParseCategory(req.Category)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		content.Category = category
	}

	word, err := h.wordService.AddWord(r.Context(), content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add word")
		return
	}

	log.Debug("word created", slog.String("word_id", word.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, wordToResponse(word))
}

// GetWord handles GET /words/{id}.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	word, err := h.wordService.GetWord(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// UpdateWord handles PUT /words/{id}.
func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateWordRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	update := service.WordUpdate{
		SourceText:         req.SourceText,
		TargetText:         req.TargetText,
		Example:            req.Example,
		ExampleTranslation: req.ExampleTranslation,
		IsUnknown:          req.IsUnknown,
	}
	if req.Category != nil {
		category, err := domain.ParseCategory(*req.Category)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		update.Category = &category
	}

	word, err := h.wordService.UpdateWord(r.Context(), id, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update word")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// DeleteWord handles DELETE /words/{id}.
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.wordService.DeleteWord(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete word")
		return
	}
	log.Debug("word deleted", slog.String("word_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// RecordFlashcard handles POST /words/{id}/flashcard.
func (h *WordHandler) RecordFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req FlashcardRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	word, err := h.wordService.RecordFlashcard(r.Context(), id, *req.Known)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// SetUnknown handles POST /words/{id}/unknown.
func (h *WordHandler) SetUnknown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UnknownRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	word, err := h.wordService.SetUnknown(r.Context(), id, *req.Unknown)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update word")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// Categories handles GET /categories.
func (h *WordHandler) Categories(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.wordService.Categories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// ImportWords handles POST /words/import. The body is either plain text
// ("source:target[:category]" per line) or an .xlsx workbook. Lines that
// fail to parse are reported and the rest are imported.
func (h *WordHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)

	var (
		contents []domain.WordContent
		err      error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), spreadsheetContentType) {
		contents, err = importer.ParseSpreadsheet(body, "")
	} else {
		contents, err = importer.ParseText(body)
	}

	var parseErr *importer.ParsingError
	switch {
	case errors.As(err, &parseErr):
		log.Debug("import contains invalid lines", slog.Any("lines", parseErr.InvalidLines))
	case err != nil:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Could not read import file", err)
		return
	}

	result, err := h.wordService.Import(r.Context(), contents)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import words")
		return
	}

	resp := ImportResponse{ImportResult: *result}
	if parseErr != nil {
		resp.SkippedLines = parseErr.InvalidLines
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
