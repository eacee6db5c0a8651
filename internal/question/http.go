package question

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for the question and quiz endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts the endpoints on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /questions", h.SubmitQuestion)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListByCategory)
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": cats,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListQuestions(r.Context(), ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       page.Questions,
		"total_questions": page.TotalQuestions,
		"categories":      page.Categories,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	deleted, err := h.service.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}

// SubmitQuestion handles POST /questions: search when the body has "word",
// otherwise create.
func (h *HTTPHandlers) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	var payload QuestionPayload
	if err := decodeBody(w, r, &payload); err != nil {
		logger := h.requestLogger(r)
		logger.Debug().Err(err).Msg("invalid question payload")
		httperrors.RespondUnprocessable(w)
		return
	}

	result, err := h.service.CreateOrSearch(r.Context(), payload, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if result.Searched {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"questions":       result.Page.Questions,
			"total_questions": result.Page.TotalQuestions,
		})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"created":          result.Created.ID,
		"question_created": result.Created.Question,
		"questions":        result.Page.Questions,
		"total_questions":  result.Page.TotalQuestions,
	})
}

// ListByCategory handles GET /categories/{id}/questions?page=N
func (h *HTTPHandlers) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	page, err := h.service.ListByCategory(r.Context(), id, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.TotalQuestions,
		"current_category": page.CurrentCategory,
	})
}

// NextQuizQuestion handles POST /quizzes. An exhausted round answers
// {"success": true} with no question.
func (h *HTTPHandlers) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var payload QuizPayload
	if err := decodeBody(w, r, &payload); err != nil {
		logger := h.requestLogger(r)
		logger.Debug().Err(err).Msg("invalid quiz payload")
		httperrors.RespondBadRequest(w)
		return
	}

	q, ok, err := h.service.NextQuizQuestion(r.Context(), payload)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	resp := map[string]interface{}{"success": true}
	if ok {
		resp["question"] = q
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

func (h *HTTPHandlers) requestLogger(r *http.Request) zerolog.Logger {
	return logging.FromContextOr(r.Context(), h.logger)
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrUnprocessable):
		status = http.StatusUnprocessableEntity
	}

	logger := h.requestLogger(r)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	httperrors.RespondError(w, status)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("failed to encode response")
	}
}
