// Package mocks provides hand-written store and service mocks for tests.
// Each mock exposes function fields for per-test behavior and falls back
// to an in-memory map implementation when the field is nil.
package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/store"
)

// MockQuestionStore implements store.QuestionStore for testing.
type MockQuestionStore struct {
	CreateFn        func(ctx context.Context, question *domain.Question) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListAllIDsFn    func(ctx context.Context) ([]uuid.UUID, error)
	ListUnseenIDsFn func(ctx context.Context, username string) ([]uuid.UUID, error)
	ListByOwnerFn   func(ctx context.Context, owner string) ([]*domain.Question, error)
	ListAllFn       func(ctx context.Context) ([]*domain.Question, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error

	// Questions backs the default implementations.
	Questions map[uuid.UUID]*domain.Question

	// Seen marks (username -> question IDs) pairs with review records,
	// consulted by the default ListUnseenIDs.
	Seen map[string]map[uuid.UUID]bool
}

// NewMockQuestionStore creates a new mock store with initialized defaults.
func NewMockQuestionStore() *MockQuestionStore {
	return &MockQuestionStore{
		Questions: make(map[uuid.UUID]*domain.Question),
		Seen:      make(map[string]map[uuid.UUID]bool),
	}
}

// Add inserts a question directly into the backing map.
func (m *MockQuestionStore) Add(q *domain.Question) {
	m.Questions[q.ID] = q
}

// MarkSeen records that username has a review record for the question.
func (m *MockQuestionStore) MarkSeen(username string, id uuid.UUID) {
	if m.Seen[username] == nil {
		m.Seen[username] = make(map[uuid.UUID]bool)
	}
	m.Seen[username][id] = true
}

// Create implements the QuestionStore interface.
func (m *MockQuestionStore) Create(ctx context.Context, question *domain.Question) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, question)
	}
	m.Questions[question.ID] = question
	return nil
}

// GetByID implements the QuestionStore interface.
func (m *MockQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	q, ok := m.Questions[id]
	if !ok {
		return nil, store.ErrQuestionNotFound
	}
	return q, nil
}

// ListAllIDs implements the QuestionStore interface.
func (m *MockQuestionStore) ListAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	if m.ListAllIDsFn != nil {
		return m.ListAllIDsFn(ctx)
	}
	ids := make([]uuid.UUID, 0, len(m.Questions))
	for id := range m.Questions {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

// ListUnseenIDs implements the QuestionStore interface.
func (m *MockQuestionStore) ListUnseenIDs(ctx context.Context, username string) ([]uuid.UUID, error) {
	if m.ListUnseenIDsFn != nil {
		return m.ListUnseenIDsFn(ctx, username)
	}
	seen := m.Seen[username]
	var ids []uuid.UUID
	for id := range m.Questions {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)
	return ids, nil
}

// ListByOwner implements the QuestionStore interface.
func (m *MockQuestionStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Question, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, owner)
	}
	var questions []*domain.Question
	for _, q := range m.Questions {
		if q.Owner == owner {
			questions = append(questions, q)
		}
	}
	sortQuestions(questions)
	return questions, nil
}

// ListAll implements the QuestionStore interface.
func (m *MockQuestionStore) ListAll(ctx context.Context) ([]*domain.Question, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	questions := make([]*domain.Question, 0, len(m.Questions))
	for _, q := range m.Questions {
		questions = append(questions, q)
	}
	sortQuestions(questions)
	return questions, nil
}

// Delete implements the QuestionStore interface.
func (m *MockQuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Questions[id]; !ok {
		return store.ErrQuestionNotFound
	}
	delete(m.Questions, id)
	return nil
}

// WithTx implements the QuestionStore interface. The mock has no
// transaction scope; it returns itself.
func (m *MockQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return m
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}

func sortQuestions(questions []*domain.Question) {
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].ID.String() < questions[j].ID.String()
	})
}
