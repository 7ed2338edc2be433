package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validOptions() []string {
	return []string{"Phrenic", "Vagus", "Hypoglossal", "Accessory"}
}

func TestNewQuestion(t *testing.T) {
	q, err := NewQuestion(
		"ana",
		"Which nerve innervates the diaphragm?",
		validOptions(),
		"Phrenic",
		"The phrenic nerve arises from C3-C5.",
		CategoryInternalMedicine,
		"anatomy",
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if q.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if q.Owner != "ana" {
		t.Errorf("Expected owner ana, got %s", q.Owner)
	}
	if q.Correct != "Phrenic" {
		t.Errorf("Expected correct answer Phrenic, got %s", q.Correct)
	}
	if q.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{
		ID:        uuid.New(),
		Owner:     "ana",
		Statement: "Which nerve innervates the diaphragm?",
		Options:   validOptions(),
		Correct:   "Phrenic",
		Feedback:  "The phrenic nerve arises from C3-C5.",
	}

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr error
	}{
		{
			name:   "valid question without category or topic",
			mutate: func(q *Question) {},
		},
		{
			name:    "nil ID",
			mutate:  func(q *Question) { q.ID = uuid.Nil },
			wantErr: ErrEmptyQuestionID,
		},
		{
			name:    "empty owner",
			mutate:  func(q *Question) { q.Owner = "" },
			wantErr: ErrEmptyOwner,
		},
		{
			name:    "empty statement",
			mutate:  func(q *Question) { q.Statement = "" },
			wantErr: ErrEmptyStatement,
		},
		{
			name:    "three options",
			mutate:  func(q *Question) { q.Options = q.Options[:3] },
			wantErr: ErrWrongOptionCount,
		},
		{
			name:    "five options",
			mutate:  func(q *Question) { q.Options = append(q.Options, "Median") },
			wantErr: ErrWrongOptionCount,
		},
		{
			name:    "blank option",
			mutate:  func(q *Question) { q.Options[2] = "" },
			wantErr: ErrEmptyOption,
		},
		{
			name:    "correct answer not among options",
			mutate:  func(q *Question) { q.Correct = "Median" },
			wantErr: ErrCorrectOptionMismatch,
		},
		{
			name:    "empty feedback",
			mutate:  func(q *Question) { q.Feedback = "" },
			wantErr: ErrEmptyFeedback,
		},
		{
			name:    "category outside the enumerated set",
			mutate:  func(q *Question) { q.Category = Category("Astrology") },
			wantErr: ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			q.Options = validOptions()
			tt.mutate(&q)

			err := q.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestCategoryIsValid(t *testing.T) {
	if !Category("").IsValid() {
		t.Error("Expected the empty category to be valid")
	}
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("Expected category %q to be valid", c)
		}
	}
	if Category("Astrology").IsValid() {
		t.Error("Expected a category outside the enumerated set to be invalid")
	}
}
