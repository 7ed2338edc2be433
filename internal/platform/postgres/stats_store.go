package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/prisma-study/srs-api/internal/store"
)

// StatsStore implements the store.StatsReader interface
// using a PostgreSQL database as the storage backend.
type StatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStatsStore creates a new PostgreSQL implementation of the
// StatsReader interface.
func NewStatsStore(db store.DBTX, logger *slog.Logger) *StatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure StatsStore implements store.StatsReader interface.
var _ store.StatsReader = (*StatsStore)(nil)

// CountQuestions implements store.StatsReader.CountQuestions.
func (s *StatsStore) CountQuestions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// ListProgress implements store.StatsReader.ListProgress.
// The learned threshold arrives as a parameter: it is a presentation
// constant, not a scheduling invariant.
func (s *StatsStore) ListProgress(ctx context.Context, learnedThresholdDays int) ([]store.UserProgress, error) {
	query := `
		SELECT
			username,
			COUNT(*) FILTER (WHERE interval_days > $1) AS learned,
			COALESCE(SUM(correct), 0) AS correct,
			COALESCE(SUM(incorrect), 0) AS incorrect
		FROM review_records
		GROUP BY username
		ORDER BY username`

	rows, err := s.db.QueryContext(ctx, query, learnedThresholdDays)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var progress []store.UserProgress
	for rows.Next() {
		var p store.UserProgress
		if err := rows.Scan(&p.Username, &p.Learned, &p.Correct, &p.Incorrect); err != nil {
			return nil, MapError(err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return progress, nil
}

// GetProgress implements store.StatsReader.GetProgress.
// Returns store.ErrNotFound if the user has no review records.
func (s *StatsStore) GetProgress(ctx context.Context, username string, learnedThresholdDays int) (*store.UserProgress, error) {
	query := `
		SELECT
			username,
			COUNT(*) FILTER (WHERE interval_days > $2) AS learned,
			COALESCE(SUM(correct), 0) AS correct,
			COALESCE(SUM(incorrect), 0) AS incorrect
		FROM review_records
		WHERE username = $1
		GROUP BY username`

	var p store.UserProgress
	err := s.db.QueryRowContext(ctx, query, username, learnedThresholdDays).
		Scan(&p.Username, &p.Learned, &p.Correct, &p.Incorrect)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, MapError(err)
	}
	return &p, nil
}
