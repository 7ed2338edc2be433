package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/store"
)

// QuestionService provides question authoring and management operations.
// Questions are immutable after creation; the only mutation is deletion.
type QuestionService interface {
	// CreateQuestion authors a new question owned by the given user.
	// Validation errors from the domain layer pass through unchanged.
	CreateQuestion(
		ctx context.Context,
		owner, statement string,
		options []string,
		correct, feedback string,
		category domain.Category,
		topic string,
	) (*domain.Question, error)

	// GetQuestion retrieves a question by ID.
	// Returns ErrQuestionNotFound if it does not exist.
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// ListQuestions returns the questions visible to the requester:
	// their own, or the whole corpus for the admin.
	ListQuestions(ctx context.Context, requester *domain.User) ([]*domain.Question, error)

	// DeleteQuestion removes a question. Only the owner or the admin may
	// delete; others get ErrNotOwned. Review records for the question are
	// removed by cascading foreign keys.
	DeleteQuestion(ctx context.Context, requester *domain.User, id uuid.UUID) error
}

// QuestionServiceImpl implements the QuestionService interface
type QuestionServiceImpl struct {
	questionStore store.QuestionStore
	logger        *slog.Logger

	// runTx wraps mutating operations in a database transaction.
	// Injectable so unit tests can substitute a pass-through scope.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questionStore store.QuestionStore,
	db *sql.DB,
	logger *slog.Logger,
) *QuestionServiceImpl {
	return &QuestionServiceImpl{
		questionStore: questionStore,
		logger:        logger.With("component", "question_service"),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

var _ QuestionService = (*QuestionServiceImpl)(nil)

// CreateQuestion authors a new question owned by the given user.
func (s *QuestionServiceImpl) CreateQuestion(
	ctx context.Context,
	owner, statement string,
	options []string,
	correct, feedback string,
	category domain.Category,
	topic string,
) (*domain.Question, error) {
	question, err := domain.NewQuestion(owner, statement, options, correct, feedback, category, topic)
	if err != nil {
		s.logger.Debug("rejected question payload",
			"error", err,
			"owner", owner)
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.questionStore.WithTx(tx).Create(ctx, question)
	})
	if err != nil {
		s.logger.Error("failed to save question",
			"error", err,
			"owner", owner,
			"question_id", question.ID)
		return nil, fmt.Errorf("failed to save question: %w", err)
	}

	s.logger.Info("question created",
		"question_id", question.ID,
		"owner", owner,
		"category", question.Category)
	return question, nil
}

// GetQuestion retrieves a question by ID.
func (s *QuestionServiceImpl) GetQuestion(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Question, error) {
	question, err := s.questionStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		s.logger.Error("failed to retrieve question",
			"error", err,
			"question_id", id)
		return nil, fmt.Errorf("failed to retrieve question: %w", err)
	}
	return question, nil
}

// ListQuestions returns the requester's questions, or all questions for admin.
func (s *QuestionServiceImpl) ListQuestions(
	ctx context.Context,
	requester *domain.User,
) ([]*domain.Question, error) {
	var (
		questions []*domain.Question
		err       error
	)
	if requester.IsAdmin() {
		questions, err = s.questionStore.ListAll(ctx)
	} else {
		questions, err = s.questionStore.ListByOwner(ctx, requester.Username)
	}
	if err != nil {
		s.logger.Error("failed to list questions",
			"error", err,
			"requester", requester.Username)
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// DeleteQuestion removes a question after an ownership check.
func (s *QuestionServiceImpl) DeleteQuestion(
	ctx context.Context,
	requester *domain.User,
	id uuid.UUID,
) error {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}

	if question.Owner != requester.Username && !requester.IsAdmin() {
		s.logger.Debug("refused question deletion",
			"question_id", id,
			"owner", question.Owner,
			"requester", requester.Username)
		return ErrNotOwned
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.questionStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}
		s.logger.Error("failed to delete question",
			"error", err,
			"question_id", id)
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.logger.Info("question deleted",
		"question_id", id,
		"requester", requester.Username)
	return nil
}
