package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/store"
)

// QuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type QuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewQuestionStore creates a new PostgreSQL implementation of the
// QuestionStore interface.
func NewQuestionStore(db store.DBTX, logger *slog.Logger) *QuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure QuestionStore implements store.QuestionStore interface.
var _ store.QuestionStore = (*QuestionStore)(nil)

// Create implements store.QuestionStore.Create.
func (s *QuestionStore) Create(ctx context.Context, question *domain.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}

	options, err := json.Marshal(question.Options)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}

	query := `
		INSERT INTO questions
			(id, owner_username, statement, options, correct, feedback, category, topic, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = s.db.ExecContext(ctx, query,
		question.ID,
		question.Owner,
		question.Statement,
		options,
		question.Correct,
		question.Feedback,
		nullableString(string(question.Category)),
		nullableString(question.Topic),
		question.CreatedAt,
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.QuestionStore.GetByID.
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *QuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query := selectQuestionColumns + ` WHERE id = $1`
	question, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrQuestionNotFound
		}
		return nil, MapError(err)
	}
	return question, nil
}

// ListAllIDs implements store.QuestionStore.ListAllIDs.
// The order is deterministic; random selection is the scheduler's job.
func (s *QuestionStore) ListAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.queryIDs(ctx, `SELECT id FROM questions ORDER BY id`)
}

// ListUnseenIDs implements store.QuestionStore.ListUnseenIDs.
// A question is unseen when no review record exists for the user.
func (s *QuestionStore) ListUnseenIDs(ctx context.Context, username string) ([]uuid.UUID, error) {
	query := `
		SELECT q.id
		FROM questions q
		LEFT JOIN review_records r
			ON r.question_id = q.id AND r.username = $1
		WHERE r.question_id IS NULL
		ORDER BY q.id`
	return s.queryIDs(ctx, query, username)
}

// ListByOwner implements store.QuestionStore.ListByOwner.
func (s *QuestionStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Question, error) {
	query := selectQuestionColumns + ` WHERE owner_username = $1 ORDER BY created_at, id`
	return s.queryQuestions(ctx, query, owner)
}

// ListAll implements store.QuestionStore.ListAll.
func (s *QuestionStore) ListAll(ctx context.Context) ([]*domain.Question, error) {
	query := selectQuestionColumns + ` ORDER BY created_at, id`
	return s.queryQuestions(ctx, query)
}

// Delete implements store.QuestionStore.Delete.
// Returns store.ErrQuestionNotFound if the question does not exist.
// Review records referencing the question are removed by the
// ON DELETE CASCADE constraint on review_records.question_id.
func (s *QuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrQuestionNotFound)
}

// WithTx implements store.QuestionStore.WithTx.
func (s *QuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &QuestionStore{db: tx, logger: s.logger}
}

const selectQuestionColumns = `
	SELECT id, owner_username, statement, options, correct, feedback, category, topic, created_at
	FROM questions`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*domain.Question, error) {
	var q domain.Question
	var options []byte
	var category, topic sql.NullString
	err := row.Scan(
		&q.ID, &q.Owner, &q.Statement, &options,
		&q.Correct, &q.Feedback, &category, &topic, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &q.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	q.Category = domain.Category(category.String)
	q.Topic = topic.String
	return &q, nil
}

func (s *QuestionStore) queryQuestions(ctx context.Context, query string, args ...any) ([]*domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var questions []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, MapError(err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return questions, nil
}

func (s *QuestionStore) queryIDs(ctx context.Context, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
