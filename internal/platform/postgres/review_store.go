package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/store"
)

// ReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type ReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface.
func NewReviewStore(db store.DBTX, logger *slog.Logger) *ReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure ReviewStore implements store.ReviewStore interface.
var _ store.ReviewStore = (*ReviewStore)(nil)

// ListDue implements store.ReviewStore.ListDue.
// The order is deterministic; random selection is the scheduler's job.
func (s *ReviewStore) ListDue(ctx context.Context, username string, asOf time.Time) ([]store.DueReview, error) {
	query := `
		SELECT question_id, due_date
		FROM review_records
		WHERE username = $1 AND due_date <= $2
		ORDER BY due_date, question_id`

	rows, err := s.db.QueryContext(ctx, query, username, domain.ToDate(asOf))
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var due []store.DueReview
	for rows.Next() {
		var d store.DueReview
		if err := rows.Scan(&d.QuestionID, &d.DueDate); err != nil {
			return nil, MapError(err)
		}
		d.DueDate = domain.ToDate(d.DueDate)
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return due, nil
}

// Get implements store.ReviewStore.Get.
// Returns store.ErrReviewRecordNotFound if the pair has never been answered.
func (s *ReviewStore) Get(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error) {
	return s.get(ctx, username, questionID, false)
}

// GetForUpdate implements store.ReviewStore.GetForUpdate.
// Meaningful only on a store bound to a transaction: the SELECT takes a
// row lock that serializes concurrent answers for the same pair until the
// transaction ends.
func (s *ReviewStore) GetForUpdate(ctx context.Context, username string, questionID uuid.UUID) (*domain.ReviewRecord, error) {
	return s.get(ctx, username, questionID, true)
}

func (s *ReviewStore) get(ctx context.Context, username string, questionID uuid.UUID, forUpdate bool) (*domain.ReviewRecord, error) {
	query := `
		SELECT username, question_id, due_date, interval_days, correct, incorrect, updated_at
		FROM review_records
		WHERE username = $1 AND question_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var record domain.ReviewRecord
	err := s.db.QueryRowContext(ctx, query, username, questionID).Scan(
		&record.Username,
		&record.QuestionID,
		&record.DueDate,
		&record.Interval,
		&record.Correct,
		&record.Incorrect,
		&record.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrReviewRecordNotFound
		}
		return nil, MapError(err)
	}
	record.DueDate = domain.ToDate(record.DueDate)
	return &record, nil
}

// Create implements store.ReviewStore.Create.
// Returns store.ErrDuplicate if a row already exists for the pair.
func (s *ReviewStore) Create(ctx context.Context, record *domain.ReviewRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO review_records
			(username, question_id, due_date, interval_days, correct, incorrect, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query,
		record.Username,
		record.QuestionID,
		domain.ToDate(record.DueDate),
		record.Interval,
		record.Correct,
		record.Incorrect,
		record.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// Update implements store.ReviewStore.Update.
// Returns store.ErrReviewRecordNotFound if no row exists for the pair.
func (s *ReviewStore) Update(ctx context.Context, record *domain.ReviewRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE review_records
		SET due_date = $3, interval_days = $4, correct = $5, incorrect = $6, updated_at = $7
		WHERE username = $1 AND question_id = $2`
	result, err := s.db.ExecContext(ctx, query,
		record.Username,
		record.QuestionID,
		domain.ToDate(record.DueDate),
		record.Interval,
		record.Correct,
		record.Incorrect,
		record.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrReviewRecordNotFound)
}

// WithTx implements store.ReviewStore.WithTx.
func (s *ReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &ReviewStore{db: tx, logger: s.logger}
}
