package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/platform/logger"
	"github.com/prisma-study/srs-api/internal/srs"
	"github.com/prisma-study/srs-api/internal/store"
)

// Verify interface compliance at compile time.
var _ StudyService = (*studyServiceImpl)(nil)

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	questions store.QuestionStore
	reviews   store.ReviewStore
	logger    *slog.Logger

	// runTx executes fn in one transaction scope. Production wiring wraps
	// store.RunInTransaction over the *sql.DB; tests substitute a
	// pass-through.
	runTx func(ctx context.Context, fn store.TxFn) error

	// randInt returns a uniform value in [0, n). Injectable so tests can
	// seed the tie-break. Defaults to math/rand's goroutine-safe Intn.
	randInt func(n int) int

	// timeFunc supplies "today". Injectable for deterministic tests.
	timeFunc func() time.Time
}

// Option customizes a StudyService created by NewStudyService.
type Option func(*studyServiceImpl)

// WithRandInt injects the uniform random source used to break ties among
// selection candidates. Use a seeded rand.Rand's Intn in tests.
func WithRandInt(randInt func(n int) int) Option {
	return func(s *studyServiceImpl) { s.randInt = randInt }
}

// WithTimeFunc injects the clock used to determine the current date.
func WithTimeFunc(timeFunc func() time.Time) Option {
	return func(s *studyServiceImpl) { s.timeFunc = timeFunc }
}

// NewStudyService creates a new StudyService implementation.
// The db handle owns the transaction scope of RecordAnswer; the stores
// must be bound to the same database.
func NewStudyService(
	db *sql.DB,
	questions store.QuestionStore,
	reviews store.ReviewStore,
	log *slog.Logger,
	opts ...Option,
) StudyService {
	if questions == nil {
		panic("questions store cannot be nil")
	}
	if reviews == nil {
		panic("reviews store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &studyServiceImpl{
		questions: questions,
		reviews:   reviews,
		logger:    log.With(slog.String("component", "study_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		randInt:  rand.Intn,
		timeFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextQuestion implements StudyService.NextQuestion.
func (s *studyServiceImpl) NextQuestion(
	ctx context.Context,
	username string,
	practiceMode bool,
) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.selectQuestionID(ctx, username, practiceMode)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		// The question can vanish between selection and load when an
		// owner or admin deletes it concurrently.
		if errors.Is(err, store.ErrQuestionNotFound) {
			log.Debug("selected question disappeared before load",
				slog.String("username", username),
				slog.String("question_id", id.String()))
			return nil, ErrQuestionNotFound
		}
		return nil, &ServiceError{
			Operation: "next_question",
			Message:   "failed to load selected question",
			Err:       err,
		}
	}

	log.Debug("selected next question",
		slog.String("username", username),
		slog.String("question_id", question.ID.String()),
		slog.Bool("practice_mode", practiceMode))
	return question, nil
}

// selectQuestionID picks the next question ID without side effects.
func (s *studyServiceImpl) selectQuestionID(
	ctx context.Context,
	username string,
	practiceMode bool,
) (uuid.UUID, error) {
	if practiceMode {
		ids, err := s.questions.ListAllIDs(ctx)
		if err != nil {
			return uuid.Nil, &ServiceError{
				Operation: "next_question",
				Message:   "failed to list questions for practice",
				Err:       err,
			}
		}
		if len(ids) == 0 {
			return uuid.Nil, ErrNoQuestions
		}
		return ids[s.randInt(len(ids))], nil
	}

	today := s.timeFunc()

	// Priority 1: reviews due on or before today.
	due, err := s.reviews.ListDue(ctx, username, today)
	if err != nil {
		return uuid.Nil, &ServiceError{
			Operation: "next_question",
			Message:   "failed to list due reviews",
			Err:       err,
		}
	}
	if len(due) > 0 {
		return due[s.randInt(len(due))].QuestionID, nil
	}

	// Priority 2: questions the user has never answered.
	unseen, err := s.questions.ListUnseenIDs(ctx, username)
	if err != nil {
		return uuid.Nil, &ServiceError{
			Operation: "next_question",
			Message:   "failed to list unseen questions",
			Err:       err,
		}
	}
	if len(unseen) > 0 {
		return unseen[s.randInt(len(unseen))], nil
	}

	// Nothing eligible. Distinguish an empty corpus from a caught-up user.
	all, err := s.questions.ListAllIDs(ctx)
	if err != nil {
		return uuid.Nil, &ServiceError{
			Operation: "next_question",
			Message:   "failed to count questions",
			Err:       err,
		}
	}
	if len(all) == 0 {
		return uuid.Nil, ErrNoQuestions
	}
	return uuid.Nil, ErrAllCaughtUp
}

// RecordAnswer implements StudyService.RecordAnswer.
func (s *studyServiceImpl) RecordAnswer(
	ctx context.Context,
	username string,
	questionID uuid.UUID,
	difficulty domain.Difficulty,
) (*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject bad input before touching any state.
	if !difficulty.IsValid() {
		log.Warn("invalid difficulty reported",
			slog.String("username", username),
			slog.String("question_id", questionID.String()),
			slog.String("difficulty", string(difficulty)))
		return nil, ErrInvalidDifficulty
	}

	now := s.timeFunc()

	var updated *domain.ReviewRecord
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		questions := s.questions.WithTx(tx)
		reviews := s.reviews.WithTx(tx)

		// The question must still exist; it may have been deleted since
		// the scheduler handed it out.
		if _, err := questions.GetByID(ctx, questionID); err != nil {
			if errors.Is(err, store.ErrQuestionNotFound) {
				return ErrQuestionNotFound
			}
			return fmt.Errorf("failed to load question: %w", err)
		}

		// Load the current record under a row lock, or start from the
		// first-review default state.
		existing := true
		record, err := reviews.GetForUpdate(ctx, username, questionID)
		if err != nil {
			if !errors.Is(err, store.ErrReviewRecordNotFound) {
				return fmt.Errorf("failed to load review record: %w", err)
			}
			existing = false
			record = domain.NewReviewRecord(username, questionID, now)
		}

		next, err := srs.Apply(record, difficulty, now)
		if err != nil {
			return err
		}

		if existing {
			if err := reviews.Update(ctx, next); err != nil {
				return fmt.Errorf("failed to update review record: %w", err)
			}
		} else {
			if err := reviews.Create(ctx, next); err != nil {
				return fmt.Errorf("failed to create review record: %w", err)
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) || errors.Is(err, ErrInvalidDifficulty) {
			return nil, err
		}
		log.Error("failed to record answer",
			slog.String("error", err.Error()),
			slog.String("username", username),
			slog.String("question_id", questionID.String()))
		return nil, &ServiceError{
			Operation: "record_answer",
			Message:   "failed to persist review record",
			Err:       err,
		}
	}

	log.Debug("recorded answer",
		slog.String("username", username),
		slog.String("question_id", questionID.String()),
		slog.String("difficulty", string(difficulty)),
		slog.Int("interval", updated.Interval),
		slog.Time("due_date", updated.DueDate))
	return updated, nil
}
