package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prisma-study/srs-api/internal/api/shared"
	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/platform/logger"
	"github.com/prisma-study/srs-api/internal/service"
	"github.com/prisma-study/srs-api/internal/service/study"
)

// StudyHandler handles the study loop: fetching the next question and
// recording answers.
type StudyHandler struct {
	studyService    study.StudyService
	questionService service.QuestionService
	logger          *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(
	studyService study.StudyService,
	questionService service.QuestionService,
	logger *slog.Logger,
) *StudyHandler {
	return &StudyHandler{
		studyService:    studyService,
		questionService: questionService,
		logger:          logger.With(slog.String("component", "study_handler")),
	}
}

// NextQuestion handles GET /api/study/next. The optional "practice" query
// parameter switches to practice mode, which draws uniformly from the whole
// corpus regardless of review state.
//
// Responds 204 when the user is caught up and 404 with a distinguishable
// message when no questions exist at all.
func (h *StudyHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	requester, ok := requesterFromContext(r)
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	practiceMode := false
	if raw := r.URL.Query().Get("practice"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid practice parameter")
			return
		}
		practiceMode = parsed
	}

	question, err := h.studyService.NextQuestion(r.Context(), requester.Username, practiceMode)

	if errors.Is(err, study.ErrAllCaughtUp) {
		log.Debug("user is all caught up", slog.String("username", requester.Username))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err != nil {
		HandleAPIError(w, r, err, "Failed to get next question")
		return
	}

	log.Debug("serving next question",
		slog.String("username", requester.Username),
		slog.String("question_id", question.ID.String()),
		slog.Bool("practice_mode", practiceMode))

	shared.RespondWithJSON(w, r, http.StatusOK, NewStudyQuestionResponse(question))
}

// RecordAnswer handles POST /api/study/{id}/answer. The response reveals the
// correct option and feedback alongside the updated review state.
func (h *StudyHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	requester, ok := requesterFromContext(r)
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	questionID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	record, err := h.studyService.RecordAnswer(
		r.Context(),
		requester.Username,
		questionID,
		domain.Difficulty(req.Difficulty),
	)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record answer")
		return
	}

	response := AnswerResponse{
		QuestionID: record.QuestionID,
		Interval:   record.Interval,
		DueDate:    record.DueDate.Format(time.DateOnly),
	}

	// Reveal the correct option and feedback. The question can disappear
	// between recording and this lookup; the review state still stands.
	if question, qErr := h.questionService.GetQuestion(r.Context(), questionID); qErr == nil {
		response.Correct = question.Correct
		response.Feedback = question.Feedback
	}

	log.Debug("recorded answer",
		slog.String("username", requester.Username),
		slog.String("question_id", questionID.String()),
		slog.String("difficulty", req.Difficulty),
		slog.Int("interval_days", record.Interval))

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
