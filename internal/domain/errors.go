// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidDifficulty is returned when a reported difficulty is not
	// one of easy, medium or hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidCategory is returned when a question category is not part
	// of the enumerated category set.
	ErrInvalidCategory = fmt.Errorf("%w: category is not in the enumerated set", ErrValidation)
)
