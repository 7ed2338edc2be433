// Package study implements the spaced-repetition scheduling core:
// selecting the next question to present to a user and updating the
// user's review state from a self-reported difficulty.
package study

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/domain"
)

// StudyService provides the two operations of the scheduling core.
// It is stateless between calls: username and question ID arrive
// explicitly on every call, and nothing is cached across them.
type StudyService interface {
	// NextQuestion selects the question the user should see next.
	//
	// In practice mode it draws uniformly at random from the entire
	// corpus, ignoring review state, and returns ErrNoQuestions only
	// when the corpus is empty.
	//
	// In standard mode it applies a strict priority:
	//  1. a due review (due date on or before today), uniform among ties;
	//  2. else an unseen question, uniform among ties;
	//  3. else ErrAllCaughtUp, or ErrNoQuestions when the corpus itself
	//     is empty, so callers can tell "done for today" from "nothing
	//     to study at all".
	//
	// The call is read-only. Repeated calls may differ only through the
	// random tie-break, never through hidden state.
	NextQuestion(ctx context.Context, username string, practiceMode bool) (*domain.Question, error)

	// RecordAnswer updates the user's review record for a question from
	// the self-reported difficulty and returns the persisted state.
	//
	// A pair the user has never answered starts from interval=1 with
	// zero counts. The interval transition is fixed: easy doubles and
	// adds seven days, medium adds three, hard resets to one; easy and
	// medium count as correct, hard as incorrect. The new due date is
	// today plus the new interval.
	//
	// The read-modify-write executes inside a single transaction keyed
	// on (username, questionID); either the whole update persists or the
	// prior record is left untouched.
	//
	// Returns ErrInvalidDifficulty before any mutation for an unknown
	// difficulty, and ErrQuestionNotFound when the question was deleted
	// between selection and answer; callers should re-request a
	// question rather than treat this as fatal.
	RecordAnswer(ctx context.Context, username string, questionID uuid.UUID, difficulty domain.Difficulty) (*domain.ReviewRecord, error)
}

// Common error types for StudyService.
var (
	// ErrAllCaughtUp indicates the user has no due reviews and no unseen
	// questions today. A valid terminal state, not a failure; practice
	// mode remains available.
	ErrAllCaughtUp = errors.New("no due reviews and no unseen questions")

	// ErrNoQuestions indicates the question corpus is empty in any mode.
	ErrNoQuestions = errors.New("no questions in the corpus")

	// ErrQuestionNotFound indicates the question does not exist, usually
	// because it was deleted after being selected.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrInvalidDifficulty indicates a difficulty outside easy/medium/hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// ServiceError wraps errors from the study service with the operation
// that failed, so consumers can differentiate with errors.As instead of
// string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
