package store

import "context"

// UserProgress aggregates one user's review records for ranking purposes.
type UserProgress struct {
	Username  string
	Learned   int // records whose interval exceeds the caller's threshold
	Correct   int
	Incorrect int
}

// StatsReader exposes read-only aggregates over review records.
//
// The "learned" threshold is a presentation concern, so it arrives as a
// parameter instead of living in the schema or the scheduling core.
type StatsReader interface {
	// CountQuestions returns the total number of questions in the corpus.
	CountQuestions(ctx context.Context) (int, error)

	// ListProgress returns per-user aggregates: how many records have an
	// interval strictly greater than learnedThresholdDays, plus total
	// correct and incorrect counts. Users with no records are omitted.
	ListProgress(ctx context.Context, learnedThresholdDays int) ([]UserProgress, error)

	// GetProgress returns the aggregate for one user.
	// Returns ErrNotFound if the user has no review records.
	GetProgress(ctx context.Context, username string, learnedThresholdDays int) (*UserProgress, error)
}
