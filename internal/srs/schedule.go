// Package srs implements the interval arithmetic of the spaced-repetition
// scheduler. The policy is a fixed three-branch table rather than a
// continuous ease-factor model: "easy" more than doubles the interval,
// "medium" grows it linearly, "hard" resets it to one day. Reviews the
// learner has never recorded start from a one-day interval.
package srs

import (
	"time"

	"github.com/prisma-study/srs-api/internal/domain"
)

// NextInterval computes the interval, in days, that follows the current
// one for the given difficulty:
//
//	easy   -> interval*2 + 7
//	medium -> interval + 3
//	hard   -> 1
//
// Returns domain.ErrInvalidDifficulty for anything else.
func NextInterval(current int, difficulty domain.Difficulty) (int, error) {
	switch difficulty {
	case domain.DifficultyEasy:
		return current*2 + 7, nil
	case domain.DifficultyMedium:
		return current + 3, nil
	case domain.DifficultyHard:
		return 1, nil
	default:
		return 0, domain.ErrInvalidDifficulty
	}
}

// Apply produces the review record that results from answering with the
// given difficulty on the given day. The input record is not modified;
// a new record is returned so a failed persist leaves prior state intact.
//
// Easy and medium answers count as correct; hard counts as incorrect.
// The new due date is the answer day plus the new interval.
func Apply(
	record *domain.ReviewRecord,
	difficulty domain.Difficulty,
	now time.Time,
) (*domain.ReviewRecord, error) {
	interval, err := NextInterval(record.Interval, difficulty)
	if err != nil {
		return nil, err
	}

	next := &domain.ReviewRecord{
		Username:   record.Username,
		QuestionID: record.QuestionID,
		Interval:   interval,
		Correct:    record.Correct,
		Incorrect:  record.Incorrect,
		DueDate:    domain.ToDate(now).AddDate(0, 0, interval),
		UpdatedAt:  now.UTC(),
	}

	if difficulty == domain.DifficultyHard {
		next.Incorrect++
	} else {
		next.Correct++
	}

	return next, nil
}
