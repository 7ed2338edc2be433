package api

import (
	"log/slog"
	"net/http"

	"github.com/prisma-study/srs-api/internal/api/shared"
	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/service"
)

// QuestionHandler handles question authoring and management requests.
type QuestionHandler struct {
	questionService service.QuestionService
	logger          *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(
	questionService service.QuestionService,
	logger *slog.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger.With(slog.String("component", "question_handler")),
	}
}

// CreateQuestion handles POST /api/questions.
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateQuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	question, err := h.questionService.CreateQuestion(
		r.Context(),
		requester.Username,
		req.Statement,
		req.Options,
		req.Correct,
		req.Feedback,
		domain.Category(req.Category),
		req.Topic,
	)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create question")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewQuestionResponse(question))
}

// ListQuestions handles GET /api/questions. Owners see their own questions;
// the admin sees the whole corpus.
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	questions, err := h.questionService.ListQuestions(r.Context(), requester)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list questions")
		return
	}

	responses := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, NewQuestionResponse(q))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// DeleteQuestion handles DELETE /api/questions/{id}.
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.questionService.DeleteQuestion(r.Context(), requester, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete question")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
