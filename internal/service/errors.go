// Package service provides application-level services for managing users,
// questions and study statistics.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check with
// errors.Is(); the API layer maps them to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer maps this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// Deliberately indistinguishable between the two cases.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken indicates the requested username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound indicates the named user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrQuestionNotFound indicates the referenced question does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAdminImmutable indicates an attempt to delete the reserved admin
	// account.
	ErrAdminImmutable = errors.New("the admin account cannot be deleted")

	// ErrPasswordTooShort indicates a password below the minimum length.
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrNoProgress indicates the user has not reviewed any question yet.
	ErrNoProgress = errors.New("no review activity recorded")
)
