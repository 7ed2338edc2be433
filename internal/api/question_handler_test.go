package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/service"
)

func TestQuestionHandlerCreate(t *testing.T) {
	t.Parallel()

	payload := CreateQuestionRequest{
		Statement: "Which nerve innervates the diaphragm?",
		Options:   []string{"Phrenic", "Vagus", "Hypoglossal", "Accessory"},
		Correct:   "Phrenic",
		Feedback:  "The phrenic nerve arises from C3-C5.",
		Category:  string(domain.CategoryInternalMedicine),
		Topic:     "Thorax",
	}

	post := func(t *testing.T, handler *QuestionHandler, req CreateQuestionRequest, identity bool) *httptest.ResponseRecorder {
		t.Helper()
		body, err := json.Marshal(req)
		require.NoError(t, err)
		httpReq := httptest.NewRequest(http.MethodPost, "/api/questions", bytes.NewReader(body))
		if identity {
			httpReq = withIdentity(httpReq, "ana", domain.RoleUser)
		}
		w := httptest.NewRecorder()
		handler.CreateQuestion(w, httpReq)
		return w
	}

	t.Run("creates question for authenticated owner", func(t *testing.T) {
		t.Parallel()
		questions := &mockQuestionService{
			CreateQuestionFn: func(ctx context.Context, owner, statement string, options []string, correct, feedback string, category domain.Category, topic string) (*domain.Question, error) {
				assert.Equal(t, "ana", owner)
				q, err := domain.NewQuestion(owner, statement, options, correct, feedback, category, topic)
				require.NoError(t, err)
				return q, nil
			},
		}
		handler := NewQuestionHandler(questions, slog.Default())

		w := post(t, handler, payload, true)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp QuestionResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "ana", resp.Owner)
		assert.Equal(t, payload.Correct, resp.Correct)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		handler := NewQuestionHandler(&mockQuestionService{}, slog.Default())

		w := post(t, handler, payload, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects wrong option count", func(t *testing.T) {
		t.Parallel()
		handler := NewQuestionHandler(&mockQuestionService{}, slog.Default())

		bad := payload
		bad.Options = []string{"Phrenic", "Vagus"}
		w := post(t, handler, bad, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects correct option mismatch", func(t *testing.T) {
		t.Parallel()
		questions := &mockQuestionService{
			CreateQuestionFn: func(ctx context.Context, owner, statement string, options []string, correct, feedback string, category domain.Category, topic string) (*domain.Question, error) {
				return nil, domain.ErrCorrectOptionMismatch
			},
		}
		handler := NewQuestionHandler(questions, slog.Default())

		bad := payload
		bad.Correct = "Median"
		w := post(t, handler, bad, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQuestionHandlerDelete(t *testing.T) {
	t.Parallel()

	newRouter := func(handler *QuestionHandler) http.Handler {
		r := chi.NewRouter()
		r.Delete("/api/questions/{id}", handler.DeleteQuestion)
		return r
	}

	t.Run("owner deletes question", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		questions := &mockQuestionService{
			DeleteQuestionFn: func(ctx context.Context, requester *domain.User, gotID uuid.UUID) error {
				assert.Equal(t, "ana", requester.Username)
				assert.Equal(t, id, gotID)
				return nil
			},
		}
		router := newRouter(NewQuestionHandler(questions, slog.Default()))

		req := withIdentity(
			httptest.NewRequest(http.MethodDelete, "/api/questions/"+id.String(), nil),
			"ana", domain.RoleUser)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		questions := &mockQuestionService{
			DeleteQuestionFn: func(ctx context.Context, requester *domain.User, id uuid.UUID) error {
				return service.ErrNotOwned
			},
		}
		router := newRouter(NewQuestionHandler(questions, slog.Default()))

		req := withIdentity(
			httptest.NewRequest(http.MethodDelete, "/api/questions/"+uuid.NewString(), nil),
			"bob", domain.RoleUser)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
