package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prisma-study/srs-api/internal/domain"
)

func TestNextInterval(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		current    int
		difficulty domain.Difficulty
		expected   int
	}{
		{
			name:       "easy from first-review default",
			current:    1,
			difficulty: domain.DifficultyEasy,
			expected:   9, // 1*2 + 7
		},
		{
			name:       "medium from first-review default",
			current:    1,
			difficulty: domain.DifficultyMedium,
			expected:   4, // 1 + 3
		},
		{
			name:       "hard resets regardless of progress",
			current:    25,
			difficulty: domain.DifficultyHard,
			expected:   1,
		},
		{
			name:       "easy compounds from persisted interval",
			current:    9,
			difficulty: domain.DifficultyEasy,
			expected:   25, // 9*2 + 7
		},
		{
			name:       "medium grows linearly",
			current:    9,
			difficulty: domain.DifficultyMedium,
			expected:   12,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NextInterval(tc.current, tc.difficulty)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNextIntervalInvalidDifficulty(t *testing.T) {
	t.Parallel()

	_, err := NextInterval(1, domain.Difficulty("impossible"))
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
}

func TestApply(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		difficulty    domain.Difficulty
		wantInterval  int
		wantCorrect   int
		wantIncorrect int
	}{
		{
			name:          "easy increments correct count",
			difficulty:    domain.DifficultyEasy,
			wantInterval:  9,
			wantCorrect:   3,
			wantIncorrect: 1,
		},
		{
			name:          "medium increments correct count",
			difficulty:    domain.DifficultyMedium,
			wantInterval:  4,
			wantCorrect:   3,
			wantIncorrect: 1,
		},
		{
			name:          "hard increments incorrect count and resets",
			difficulty:    domain.DifficultyHard,
			wantInterval:  1,
			wantCorrect:   2,
			wantIncorrect: 2,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			record := &domain.ReviewRecord{
				Username:   "ana",
				QuestionID: uuid.New(),
				DueDate:    domain.ToDate(now),
				Interval:   1,
				Correct:    2,
				Incorrect:  1,
			}

			next, err := Apply(record, tc.difficulty, now)
			require.NoError(t, err)

			assert.Equal(t, tc.wantInterval, next.Interval)
			assert.Equal(t, tc.wantCorrect, next.Correct)
			assert.Equal(t, tc.wantIncorrect, next.Incorrect)
			assert.Equal(t,
				time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, tc.wantInterval),
				next.DueDate)

			// The input record must be untouched so a failed persist
			// cannot leave half-applied state behind.
			assert.Equal(t, 1, record.Interval)
			assert.Equal(t, 2, record.Correct)
			assert.Equal(t, 1, record.Incorrect)
		})
	}
}

func TestApplyCompoundsFromPersistedInterval(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	record := domain.NewReviewRecord("ana", uuid.New(), now)

	first, err := Apply(record, domain.DifficultyEasy, now)
	require.NoError(t, err)
	assert.Equal(t, 9, first.Interval)
	assert.Equal(t, 1, first.Correct)

	second, err := Apply(first, domain.DifficultyEasy, now)
	require.NoError(t, err)
	assert.Equal(t, 25, second.Interval) // 9*2 + 7, not recomputed from a fixed base
	assert.Equal(t, 2, second.Correct)
}

func TestApplyInvalidDifficultyMutatesNothing(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	record := domain.NewReviewRecord("ana", uuid.New(), now)

	next, err := Apply(record, domain.Difficulty("brutal"), now)
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
	assert.Nil(t, next)
	assert.Equal(t, 1, record.Interval)
	assert.Equal(t, 0, record.Correct)
	assert.Equal(t, 0, record.Incorrect)
}
