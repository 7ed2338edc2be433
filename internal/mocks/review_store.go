package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/store"
)

// MockReviewStore implements store.ReviewStore for testing.
type MockReviewStore struct {
	ListDueFn      func(ctx context.Context, username string, asOf time.Time) ([]store.DueReview, error)
	GetFn          func(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error)
	GetForUpdateFn func(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error)
	CreateFn       func(ctx context.Context, record *domain.ReviewRecord) error
	UpdateFn       func(ctx context.Context, record *domain.ReviewRecord) error

	// Records backs the default implementations, keyed by username and
	// question ID.
	Records map[string]map[uuid.UUID]*domain.ReviewRecord
}

// NewMockReviewStore creates a new mock store with initialized defaults.
func NewMockReviewStore() *MockReviewStore {
	return &MockReviewStore{
		Records: make(map[string]map[uuid.UUID]*domain.ReviewRecord),
	}
}

// Add inserts a record directly into the backing map.
func (m *MockReviewStore) Add(record *domain.ReviewRecord) {
	if m.Records[record.Username] == nil {
		m.Records[record.Username] = make(map[uuid.UUID]*domain.ReviewRecord)
	}
	m.Records[record.Username][record.QuestionID] = record
}

// ListDue implements the ReviewStore interface.
func (m *MockReviewStore) ListDue(ctx context.Context, username string, asOf time.Time) ([]store.DueReview, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, username, asOf)
	}
	var due []store.DueReview
	for _, record := range m.Records[username] {
		if record.IsDue(asOf) {
			due = append(due, store.DueReview{
				QuestionID: record.QuestionID,
				DueDate:    record.DueDate,
			})
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].QuestionID.String() < due[j].QuestionID.String()
	})
	return due, nil
}

// Get implements the ReviewStore interface.
func (m *MockReviewStore) Get(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, username, questionID)
	}
	record, ok := m.Records[username][questionID]
	if !ok {
		return nil, store.ErrReviewRecordNotFound
	}
	return record, nil
}

// GetForUpdate implements the ReviewStore interface. The mock has no row
// locks; it behaves like Get.
func (m *MockReviewStore) GetForUpdate(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, username, questionID)
	}
	return m.Get(ctx, username, questionID)
}

// Create implements the ReviewStore interface.
func (m *MockReviewStore) Create(ctx context.Context, record *domain.ReviewRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, record)
	}
	if _, ok := m.Records[record.Username][record.QuestionID]; ok {
		return store.ErrDuplicate
	}
	m.Add(record)
	return nil
}

// Update implements the ReviewStore interface.
func (m *MockReviewStore) Update(ctx context.Context, record *domain.ReviewRecord) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, record)
	}
	if _, ok := m.Records[record.Username][record.QuestionID]; !ok {
		return store.ErrReviewRecordNotFound
	}
	m.Records[record.Username][record.QuestionID] = record
	return nil
}

// WithTx implements the ReviewStore interface. The mock has no
// transaction scope; it returns itself.
func (m *MockReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return m
}
