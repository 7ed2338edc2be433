package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/service/study"
)

func studyTestQuestion() *domain.Question {
	return &domain.Question{
		ID:        uuid.New(),
		Owner:     "author",
		Statement: "Which nerve innervates the diaphragm?",
		Options:   []string{"Phrenic", "Vagus", "Hypoglossal", "Accessory"},
		Correct:   "Phrenic",
		Feedback:  "The phrenic nerve arises from C3-C5.",
	}
}

func TestStudyHandlerNextQuestion(t *testing.T) {
	t.Parallel()

	t.Run("serves question without revealing the answer", func(t *testing.T) {
		t.Parallel()
		question := studyTestQuestion()
		studySvc := &mockStudyService{
			NextQuestionFn: func(ctx context.Context, username string, practiceMode bool) (*domain.Question, error) {
				assert.Equal(t, "ana", username)
				assert.False(t, practiceMode)
				return question, nil
			},
		}
		handler := NewStudyHandler(studySvc, &mockQuestionService{}, slog.Default())

		req := withIdentity(
			httptest.NewRequest(http.MethodGet, "/api/study/next", nil),
			"ana", domain.RoleUser)
		w := httptest.NewRecorder()
		handler.NextQuestion(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp StudyQuestionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, question.ID, resp.ID)
		assert.Equal(t, question.Options, resp.Options)

		// The raw body must not contain the correct answer or feedback.
		assert.NotContains(t, w.Body.String(), "correct")
		assert.NotContains(t, w.Body.String(), "feedback")
	})

	t.Run("practice parameter is forwarded", func(t *testing.T) {
		t.Parallel()
		studySvc := &mockStudyService{
			NextQuestionFn: func(ctx context.Context, username string, practiceMode bool) (*domain.Question, error) {
				assert.True(t, practiceMode)
				return studyTestQuestion(), nil
			},
		}
		handler := NewStudyHandler(studySvc, &mockQuestionService{}, slog.Default())

		req := withIdentity(
			httptest.NewRequest(http.MethodGet, "/api/study/next?practice=true", nil),
			"ana", domain.RoleUser)
		w := httptest.NewRecorder()
		handler.NextQuestion(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("all caught up yields 204", func(t *testing.T) {
		t.Parallel()
		studySvc := &mockStudyService{
			NextQuestionFn: func(ctx context.Context, username string, practiceMode bool) (*domain.Question, error) {
				return nil, study.ErrAllCaughtUp
			},
		}
		handler := NewStudyHandler(studySvc, &mockQuestionService{}, slog.Default())

		req := withIdentity(
			httptest.NewRequest(http.MethodGet, "/api/study/next", nil),
			"ana", domain.RoleUser)
		w := httptest.NewRecorder()
		handler.NextQuestion(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("empty corpus is distinguishable from caught up", func(t *testing.T) {
		t.Parallel()
		studySvc := &mockStudyService{
			NextQuestionFn: func(ctx context.Context, username string, practiceMode bool) (*domain.Question, error) {
				return nil, study.ErrNoQuestions
			},
		}
		handler := NewStudyHandler(studySvc, &mockQuestionService{}, slog.Default())

		req := withIdentity(
			httptest.NewRequest(http.MethodGet, "/api/study/next", nil),
			"ana", domain.RoleUser)
		w := httptest.NewRecorder()
		handler.NextQuestion(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No questions")
	})

	t.Run("missing identity yields 401", func(t *testing.T) {
		t.Parallel()
		handler := NewStudyHandler(&mockStudyService{}, &mockQuestionService{}, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/api/study/next", nil)
		w := httptest.NewRecorder()
		handler.NextQuestion(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestStudyHandlerRecordAnswer(t *testing.T) {
	t.Parallel()

	newRouter := func(handler *StudyHandler) http.Handler {
		r := chi.NewRouter()
		r.Post("/api/study/{id}/answer", handler.RecordAnswer)
		return r
	}

	postAnswer := func(t *testing.T, router http.Handler, questionID uuid.UUID, difficulty string) *httptest.ResponseRecorder {
		t.Helper()
		body, err := json.Marshal(AnswerRequest{Difficulty: difficulty})
		require.NoError(t, err)

		req := withIdentity(
			httptest.NewRequest(
				http.MethodPost,
				"/api/study/"+questionID.String()+"/answer",
				bytes.NewReader(body)),
			"ana", domain.RoleUser)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("records answer and reveals feedback", func(t *testing.T) {
		t.Parallel()
		question := studyTestQuestion()
		due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

		studySvc := &mockStudyService{
			RecordAnswerFn: func(ctx context.Context, username string, questionID uuid.UUID, difficulty domain.Difficulty) (*domain.ReviewRecord, error) {
				assert.Equal(t, domain.DifficultyEasy, difficulty)
				return &domain.ReviewRecord{
					Username:   username,
					QuestionID: questionID,
					DueDate:    due,
					Interval:   9,
					Correct:    1,
				}, nil
			},
		}
		questionSvc := &mockQuestionService{
			GetQuestionFn: func(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
				return question, nil
			},
		}
		router := newRouter(NewStudyHandler(studySvc, questionSvc, slog.Default()))

		w := postAnswer(t, router, question.ID, "easy")
		require.Equal(t, http.StatusOK, w.Code)

		var resp AnswerResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 9, resp.Interval)
		assert.Equal(t, "2024-06-10", resp.DueDate)
		assert.Equal(t, "Phrenic", resp.Correct)
		assert.Equal(t, question.Feedback, resp.Feedback)
	})

	t.Run("invalid difficulty fails validation", func(t *testing.T) {
		t.Parallel()
		router := newRouter(
			NewStudyHandler(&mockStudyService{}, &mockQuestionService{}, slog.Default()))

		w := postAnswer(t, router, uuid.New(), "trivial")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("question deleted race yields 404", func(t *testing.T) {
		t.Parallel()
		studySvc := &mockStudyService{
			RecordAnswerFn: func(ctx context.Context, username string, questionID uuid.UUID, difficulty domain.Difficulty) (*domain.ReviewRecord, error) {
				return nil, study.ErrQuestionNotFound
			},
		}
		router := newRouter(NewStudyHandler(studySvc, &mockQuestionService{}, slog.Default()))

		w := postAnswer(t, router, uuid.New(), "easy")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed question id yields 400", func(t *testing.T) {
		t.Parallel()
		router := newRouter(
			NewStudyHandler(&mockStudyService{}, &mockQuestionService{}, slog.Default()))

		body, err := json.Marshal(AnswerRequest{Difficulty: "easy"})
		require.NoError(t, err)
		req := withIdentity(
			httptest.NewRequest(http.MethodPost, "/api/study/not-a-uuid/answer", bytes.NewReader(body)),
			"ana", domain.RoleUser)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
