package store

import (
	"context"
	"database/sql"

	"github.com/prisma-study/srs-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users ordered by username.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdatePassword replaces the user's hashed password credential.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, username, hashedPassword string) error

	// Delete removes a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	//
	// Deleting a user relies on ON DELETE CASCADE foreign keys to remove
	// the user's review records and authored questions in the same
	// statement; no application-level cleanup happens here.
	Delete(ctx context.Context, username string) error

	// WithTx returns a UserStore bound to the given transaction so that
	// multiple operations can share one atomic scope.
	WithTx(tx *sql.Tx) UserStore
}
