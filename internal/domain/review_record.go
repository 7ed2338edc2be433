package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the learner's self-reported difficulty for a question
// they just answered. It drives the interval update.
type Difficulty string

// Possible difficulty values.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether the difficulty is one of easy, medium or hard.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Common validation errors for ReviewRecord. All wrap ErrValidation so
// callers can match the whole class with errors.Is.
var (
	ErrEmptyRecordUsername   = fmt.Errorf("%w: review record username cannot be empty", ErrValidation)
	ErrEmptyRecordQuestionID = fmt.Errorf("%w: review record question ID cannot be empty", ErrValidation)
	ErrIntervalTooSmall      = fmt.Errorf("%w: interval must be at least 1 day", ErrValidation)
	ErrNegativeCount         = fmt.Errorf("%w: answer counts cannot be negative", ErrValidation)
)

// ReviewRecord tracks a user's spaced-repetition state for one question.
// At most one record exists per (username, question) pair; it is created
// on the first answer and overwritten on every subsequent one.
type ReviewRecord struct {
	Username   string    `json:"username"`
	QuestionID uuid.UUID `json:"question_id"`
	DueDate    time.Time `json:"due_date"` // calendar date, midnight UTC
	Interval   int       `json:"interval"` // days, >= 1
	Correct    int       `json:"correct"`
	Incorrect  int       `json:"incorrect"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewReviewRecord creates the default state for a pair the user has never
// answered: interval of one day, no recorded answers, due immediately.
func NewReviewRecord(username string, questionID uuid.UUID, today time.Time) *ReviewRecord {
	day := ToDate(today)
	return &ReviewRecord{
		Username:   username,
		QuestionID: questionID,
		DueDate:    day,
		Interval:   1,
		Correct:    0,
		Incorrect:  0,
		UpdatedAt:  today.UTC(),
	}
}

// Validate checks if the ReviewRecord has valid data.
func (r *ReviewRecord) Validate() error {
	if r.Username == "" {
		return ErrEmptyRecordUsername
	}
	if r.QuestionID == uuid.Nil {
		return ErrEmptyRecordQuestionID
	}
	if r.Interval < 1 {
		return ErrIntervalTooSmall
	}
	if r.Correct < 0 || r.Incorrect < 0 {
		return ErrNegativeCount
	}
	return nil
}

// IsDue reports whether the record is due on or before the given day.
func (r *ReviewRecord) IsDue(today time.Time) bool {
	return !r.DueDate.After(ToDate(today))
}

// ToDate truncates a timestamp to its calendar date at midnight UTC.
// Due dates are whole days; time-of-day never participates in scheduling.
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
