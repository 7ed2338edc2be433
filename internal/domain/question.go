package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionOptionCount is the exact number of answer options a question carries.
const QuestionOptionCount = 4

// Category is a fixed tag drawn from the enumerated category set.
type Category string

// The enumerated category set. The corpus this platform was built for is
// medical board preparation; CategoryOther catches everything else.
const (
	CategoryInternalMedicine Category = "Internal Medicine"
	CategoryGeneralSurgery   Category = "General Surgery"
	CategoryOrthopedics      Category = "Orthopedics"
	CategoryUrology          Category = "Urology"
	CategoryENT              Category = "ENT"
	CategoryEmergency        Category = "Emergency"
	CategoryPsychiatry       Category = "Psychiatry"
	CategoryNeurology        Category = "Neurology"
	CategoryNeurosurgery     Category = "Neurosurgery"
	CategoryEpidemiology     Category = "Epidemiology"
	CategoryPediatrics       Category = "Pediatrics"
	CategoryGynecology       Category = "Gynecology"
	CategoryOphthalmology    Category = "Ophthalmology"
	CategoryOther            Category = "Other"
)

// Categories lists the enumerated category set in display order.
var Categories = []Category{
	CategoryInternalMedicine,
	CategoryGeneralSurgery,
	CategoryOrthopedics,
	CategoryUrology,
	CategoryENT,
	CategoryEmergency,
	CategoryPsychiatry,
	CategoryNeurology,
	CategoryNeurosurgery,
	CategoryEpidemiology,
	CategoryPediatrics,
	CategoryGynecology,
	CategoryOphthalmology,
	CategoryOther,
}

// IsValid reports whether the category belongs to the enumerated set.
// The empty category is valid: category tagging is optional.
func (c Category) IsValid() bool {
	if c == "" {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Common validation errors for Question. All wrap ErrValidation so callers
// can match the whole class with errors.Is.
var (
	ErrEmptyQuestionID       = fmt.Errorf("%w: question ID cannot be empty", ErrValidation)
	ErrEmptyOwner            = fmt.Errorf("%w: question owner cannot be empty", ErrValidation)
	ErrEmptyStatement        = fmt.Errorf("%w: question statement cannot be empty", ErrValidation)
	ErrWrongOptionCount      = fmt.Errorf("%w: question must have exactly four options", ErrValidation)
	ErrEmptyOption           = fmt.Errorf("%w: question options cannot be empty", ErrValidation)
	ErrCorrectOptionMismatch = fmt.Errorf("%w: correct answer must equal one of the options", ErrValidation)
	ErrEmptyFeedback         = fmt.Errorf("%w: question feedback cannot be empty", ErrValidation)
)

// Question is a multiple-choice question authored by a user.
// Questions are immutable after creation except for deletion, which
// cascades to all review records referencing them.
type Question struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Statement string    `json:"statement"`
	Options   []string  `json:"options"` // exactly four
	Correct   string    `json:"correct"` // must equal one of Options
	Feedback  string    `json:"feedback"`
	Category  Category  `json:"category,omitempty"` // optional, enumerated
	Topic     string    `json:"topic,omitempty"`    // optional, free text
	CreatedAt time.Time `json:"created_at"`
}

// NewQuestion creates a Question with a fresh system-assigned ID.
// Returns an error if validation fails.
func NewQuestion(
	owner, statement string,
	options []string,
	correct, feedback string,
	category Category,
	topic string,
) (*Question, error) {
	q := &Question{
		ID:        uuid.New(),
		Owner:     owner,
		Statement: statement,
		Options:   options,
		Correct:   correct,
		Feedback:  feedback,
		Category:  category,
		Topic:     topic,
		CreatedAt: time.Now().UTC(),
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks if the Question has valid data.
// Returns an error if any field fails validation.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrEmptyQuestionID
	}
	if q.Owner == "" {
		return ErrEmptyOwner
	}
	if q.Statement == "" {
		return ErrEmptyStatement
	}
	if len(q.Options) != QuestionOptionCount {
		return ErrWrongOptionCount
	}
	correctFound := false
	for _, opt := range q.Options {
		if opt == "" {
			return ErrEmptyOption
		}
		if opt == q.Correct {
			correctFound = true
		}
	}
	if !correctFound {
		return ErrCorrectOptionMismatch
	}
	if q.Feedback == "" {
		return ErrEmptyFeedback
	}
	if !q.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
