package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/service"
	"github.com/prisma-study/srs-api/internal/service/auth"
	"github.com/prisma-study/srs-api/internal/service/study"
	"github.com/prisma-study/srs-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid credentials",
			err:            service.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "ownership error",
			err:            service.ErrNotOwned,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin deletion refused",
			err:            service.ErrAdminImmutable,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "question not found",
			err:            service.ErrQuestionNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "empty corpus",
			err:            study.ErrNoQuestions,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "conflict error",
			err:            service.ErrUsernameTaken,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "domain validation error",
			err:            domain.ErrCorrectOptionMismatch,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid difficulty",
			err:            study.ErrInvalidDifficulty,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "store invalid entity",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "all caught up",
			err:            study.ErrAllCaughtUp,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "unknown error",
			err:            errors.New("unknown error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := MapErrorToStatusCode(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "invalid credentials never echo internals",
			err:             fmt.Errorf("user lookup: %w", service.ErrInvalidCredentials),
			expectedMessage: "Invalid username or password",
		},
		{
			name:            "refresh token errors share one message",
			err:             auth.ErrWrongTokenType,
			expectedMessage: "Invalid refresh token",
		},
		{
			name:            "empty corpus is distinguishable from caught up",
			err:             study.ErrNoQuestions,
			expectedMessage: "No questions have been created yet",
		},
		{
			name:            "unknown errors map to a generic message",
			err:             errors.New("pq: connection refused"),
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMessage, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'LoginRequest.Username' Error:Field validation for 'Username' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Username: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
