package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
)

// QuestionStore defines the interface for question data persistence.
type QuestionStore interface {
	// Create saves a new question to the store.
	// The question must be valid according to domain validation rules.
	Create(ctx context.Context, question *domain.Question) error

	// GetByID retrieves a question by its unique ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// ListAllIDs returns the IDs of every question in the corpus, in a
	// deterministic order. Callers needing random selection pick from the
	// returned slice themselves; the store never randomizes.
	ListAllIDs(ctx context.Context) ([]uuid.UUID, error)

	// ListUnseenIDs returns the IDs of questions that have no review
	// record for the given user, in a deterministic order.
	ListUnseenIDs(ctx context.Context, username string) ([]uuid.UUID, error)

	// ListByOwner returns the questions authored by the given user.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Question, error)

	// ListAll returns every question in the corpus. Admin-facing.
	ListAll(ctx context.Context) ([]*domain.Question, error)

	// Delete removes a question by its ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	//
	// Deletion relies on ON DELETE CASCADE foreign keys to remove all
	// review records referencing the question in the same statement.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a QuestionStore bound to the given transaction.
	WithTx(tx *sql.Tx) QuestionStore
}
