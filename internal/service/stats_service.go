package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/prisma-study/srs-api/internal/store"
)

// LearnedThresholdDays marks a question as learned once its review interval
// exceeds this many days. Display convention only; the scheduling core never
// sees it.
const LearnedThresholdDays = 7

// RankingEntry is one row of the learning ranking.
type RankingEntry struct {
	Username     string  `json:"username"`
	Learned      int     `json:"learned"`
	LearningRate float64 `json:"learning_rate"`
}

// UserStats summarizes one user's review history.
type UserStats struct {
	Username  string  `json:"username"`
	Learned   int     `json:"learned"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Accuracy  float64 `json:"accuracy"`
}

// StatsService exposes read-only learning statistics.
type StatsService interface {
	// Ranking returns all users with review activity ordered by learned
	// count descending, username ascending for ties. Learning rate is
	// learned questions over the corpus size (zero when the corpus is empty).
	Ranking(ctx context.Context) ([]RankingEntry, error)

	// UserStats returns the named user's totals and answer accuracy.
	// Returns ErrNoProgress when the user has no review records.
	UserStats(ctx context.Context, username string) (*UserStats, error)
}

// StatsServiceImpl implements the StatsService interface
type StatsServiceImpl struct {
	stats  store.StatsReader
	logger *slog.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(stats store.StatsReader, logger *slog.Logger) *StatsServiceImpl {
	return &StatsServiceImpl{
		stats:  stats,
		logger: logger.With("component", "stats_service"),
	}
}

var _ StatsService = (*StatsServiceImpl)(nil)

// Ranking returns per-user learned counts and learning rates.
func (s *StatsServiceImpl) Ranking(ctx context.Context) ([]RankingEntry, error) {
	total, err := s.stats.CountQuestions(ctx)
	if err != nil {
		s.logger.Error("failed to count questions", "error", err)
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	progress, err := s.stats.ListProgress(ctx, LearnedThresholdDays)
	if err != nil {
		s.logger.Error("failed to aggregate progress", "error", err)
		return nil, fmt.Errorf("failed to aggregate progress: %w", err)
	}

	entries := make([]RankingEntry, 0, len(progress))
	for _, p := range progress {
		entry := RankingEntry{
			Username: p.Username,
			Learned:  p.Learned,
		}
		if total > 0 {
			entry.LearningRate = float64(p.Learned) / float64(total)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Learned != entries[j].Learned {
			return entries[i].Learned > entries[j].Learned
		}
		return entries[i].Username < entries[j].Username
	})

	return entries, nil
}

// UserStats returns one user's totals and accuracy.
func (s *StatsServiceImpl) UserStats(ctx context.Context, username string) (*UserStats, error) {
	progress, err := s.stats.GetProgress(ctx, username, LearnedThresholdDays)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoProgress
		}
		s.logger.Error("failed to aggregate user progress",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to aggregate user progress: %w", err)
	}

	stats := &UserStats{
		Username:  progress.Username,
		Learned:   progress.Learned,
		Correct:   progress.Correct,
		Incorrect: progress.Incorrect,
	}
	if answered := progress.Correct + progress.Incorrect; answered > 0 {
		stats.Accuracy = float64(progress.Correct) / float64(answered)
	}

	return stats, nil
}
