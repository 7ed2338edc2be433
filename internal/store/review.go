package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
)

// DueReview is a (question, due date) pair eligible for re-presentation.
type DueReview struct {
	QuestionID uuid.UUID
	DueDate    time.Time
}

// ReviewStore defines the interface for review record persistence.
//
// A review record exists per (username, question) pair at most once.
// The write path is an explicit read-modify-write: callers load the row
// with GetForUpdate inside a transaction, compute the next state, then
// Create or Update depending on whether a row existed. The row lock taken
// by GetForUpdate serializes concurrent answers for the same pair.
type ReviewStore interface {
	// ListDue returns the user's review records whose due date is on or
	// before asOf, in a deterministic order.
	ListDue(ctx context.Context, username string, asOf time.Time) ([]DueReview, error)

	// Get retrieves the review record for the (username, questionID) pair.
	// Returns ErrReviewRecordNotFound if the pair has never been answered.
	Get(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error)

	// GetForUpdate is Get with a row-level lock. It must be called on a
	// store bound to a transaction; the lock is held until the
	// transaction ends.
	GetForUpdate(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error)

	// Create inserts a review record for a pair with no existing row.
	// Returns ErrDuplicate if a row already exists.
	Create(ctx context.Context, record *domain.ReviewRecord) error

	// Update overwrites the existing review record for the record's pair.
	// Returns ErrReviewRecordNotFound if no row exists.
	Update(ctx context.Context, record *domain.ReviewRecord) error

	// WithTx returns a ReviewStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewStore
}
