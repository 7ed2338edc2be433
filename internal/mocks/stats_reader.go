package mocks

import (
	"context"

	"github.com/prisma-study/srs-api/internal/store"
)

// MockStatsReader implements store.StatsReader for testing.
type MockStatsReader struct {
	CountQuestionsFn func(ctx context.Context) (int, error)
	ListProgressFn   func(ctx context.Context, learnedThresholdDays int) ([]store.UserProgress, error)
	GetProgressFn    func(ctx context.Context, username string, learnedThresholdDays int) (*store.UserProgress, error)

	// Defaults used when the function fields are nil.
	QuestionCount int
	Progress      []store.UserProgress
}

// NewMockStatsReader returns a MockStatsReader with empty defaults.
func NewMockStatsReader() *MockStatsReader {
	return &MockStatsReader{}
}

// CountQuestions implements the StatsReader interface.
func (m *MockStatsReader) CountQuestions(ctx context.Context) (int, error) {
	if m.CountQuestionsFn != nil {
		return m.CountQuestionsFn(ctx)
	}
	return m.QuestionCount, nil
}

// ListProgress implements the StatsReader interface.
func (m *MockStatsReader) ListProgress(ctx context.Context, learnedThresholdDays int) ([]store.UserProgress, error) {
	if m.ListProgressFn != nil {
		return m.ListProgressFn(ctx, learnedThresholdDays)
	}
	return m.Progress, nil
}

// GetProgress implements the StatsReader interface.
func (m *MockStatsReader) GetProgress(ctx context.Context, username string, learnedThresholdDays int) (*store.UserProgress, error) {
	if m.GetProgressFn != nil {
		return m.GetProgressFn(ctx, username, learnedThresholdDays)
	}
	for i := range m.Progress {
		if m.Progress[i].Username == username {
			return &m.Progress[i], nil
		}
	}
	return nil, store.ErrNotFound
}
