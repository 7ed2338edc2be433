package domain

import (
	"fmt"
	"time"
)

// Role describes a user's authorization level.
type Role string

// Possible role values. Exactly one user, the reserved AdminUsername
// identity, carries RoleAdmin.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// AdminUsername is the reserved administrator identity. It is created at
// startup if absent, cannot be registered and cannot be deleted.
const AdminUsername = "admin"

// Common validation errors for User. All wrap ErrValidation so callers can
// match the whole class with errors.Is.
var (
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong     = fmt.Errorf("%w: username must be at most 64 characters long", ErrValidation)
	ErrReservedUsername    = fmt.Errorf("%w: username is reserved", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("%w: role must be admin or user", ErrValidation)
)

// User represents a registered user of the study platform.
// The username is the primary identity; all review records key on it.
type User struct {
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a regular (non-admin) user with the given username and
// an already-hashed password credential. The reserved admin identity must
// be created through NewAdminUser. Returns an error if validation fails.
func NewUser(username, hashedPassword string) (*User, error) {
	if username == AdminUsername {
		return nil, ErrReservedUsername
	}
	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		Role:           RoleUser,
		CreatedAt:      time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// NewAdminUser creates the reserved administrator identity with an
// already-hashed password credential.
func NewAdminUser(hashedPassword string) (*User, error) {
	user := &User{
		Username:       AdminUsername,
		HashedPassword: hashedPassword,
		Role:           RoleAdmin,
		CreatedAt:      time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > 64 {
		return ErrUsernameTooLong
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return ErrInvalidRole
	}
	if u.Role == RoleAdmin && u.Username != AdminUsername {
		return ErrReservedUsername
	}
	return nil
}
